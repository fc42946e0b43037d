package memstore

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// table keeps value copies of documents keyed by id. Callers hold Store.mu.
type table[T any, PT interface {
	*T
	models.Document
}] struct {
	entity string
	rows   map[primitive.ObjectID]T
	// unique returns the unique key of a document, or "" when it has none.
	unique func(PT) string
}

func newTable[T any, PT interface {
	*T
	models.Document
}](entity string, unique func(PT) string) *table[T, PT] {
	return &table[T, PT]{entity: entity, rows: make(map[primitive.ObjectID]T), unique: unique}
}

func (t *table[T, PT]) conflict(doc PT) bool {
	if t.unique == nil {
		return false
	}
	key := t.unique(doc)
	if key == "" {
		return false
	}
	id := doc.Meta().ID
	for rowID, row := range t.rows {
		if rowID == id {
			continue
		}
		if t.unique(PT(&row)) == key {
			return true
		}
	}
	return false
}

func (t *table[T, PT]) insert(doc PT) error {
	doc.Meta().Stamp(time.Now().UTC())
	if t.conflict(doc) {
		return errors.Conflict.Explain("%s violates a unique constraint", t.entity)
	}
	t.rows[doc.Meta().ID] = *doc
	return nil
}

func (t *table[T, PT]) get(id primitive.ObjectID) (PT, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, errors.NotFound.Explain("%s %s not found", t.entity, id.Hex())
	}
	return PT(&row), nil
}

func (t *table[T, PT]) find(match func(PT) bool) (PT, bool) {
	for _, row := range t.rows {
		if match(PT(&row)) {
			out := row
			return PT(&out), true
		}
	}
	return nil, false
}

// replace overwrites the stored row if it is still at doc's version.
func (t *table[T, PT]) replace(doc PT) error {
	meta := doc.Meta()
	existing, ok := t.rows[meta.ID]
	if !ok {
		return errors.NotFound.Explain("%s %s not found", t.entity, meta.ID.Hex())
	}
	stored := PT(&existing).Meta()
	if stored.Version != meta.Version {
		return errors.Stale.Explain("%s %s was modified concurrently", t.entity, meta.ID.Hex())
	}
	if t.conflict(doc) {
		return errors.Conflict.Explain("%s violates a unique constraint", t.entity)
	}
	meta.CreatedAt = stored.CreatedAt
	meta.UpdatedAt = time.Now().UTC()
	meta.Version++
	t.rows[meta.ID] = *doc
	return nil
}

func (t *table[T, PT]) delete(id primitive.ObjectID) error {
	if _, ok := t.rows[id]; !ok {
		return errors.NotFound.Explain("%s %s not found", t.entity, id.Hex())
	}
	delete(t.rows, id)
	return nil
}

// list filters, sorts newest first and paginates like the Mongo provider.
func (t *table[T, PT]) list(match func(PT) bool, page models.Page) ([]PT, int64) {
	page = page.Normalize()

	matched := make([]PT, 0, len(t.rows))
	for _, row := range t.rows {
		doc := row
		if match == nil || match(PT(&doc)) {
			matched = append(matched, PT(&doc))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i].Meta(), matched[j].Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.Hex() > b.ID.Hex()
	})

	total := int64(len(matched))
	start := page.Skip()
	if start < 0 || start >= len(matched) {
		return []PT{}, total
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total
}
