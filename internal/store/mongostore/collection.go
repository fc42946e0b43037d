package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// collection implements the CRUD plumbing shared by every entity.
type collection[T any, PT interface {
	*T
	models.Document
}] struct {
	coll   *mongo.Collection
	entity string
}

func newCollection[T any, PT interface {
	*T
	models.Document
}](db *mongo.Database, name, entity string) collection[T, PT] {
	return collection[T, PT]{coll: db.Collection(name), entity: entity}
}

func (c collection[T, PT]) insert(ctx context.Context, doc PT) error {
	doc.Meta().Stamp(time.Now().UTC())
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return c.mapWriteErr(err)
	}
	return nil
}

func (c collection[T, PT]) get(ctx context.Context, id primitive.ObjectID) (PT, error) {
	return c.findOne(ctx, bson.M{"_id": id}, id.Hex())
}

func (c collection[T, PT]) findOne(ctx context.Context, filter bson.M, key string) (PT, error) {
	var out T
	if err := c.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NotFound.Explain("%s %s not found", c.entity, key)
		}
		return nil, fmt.Errorf("find %s: %w", c.entity, err)
	}
	return PT(&out), nil
}

// list returns one page of documents matching filter, newest first, and the
// total number of matches.
func (c collection[T, PT]) list(ctx context.Context, filter bson.M, page models.Page) ([]PT, int64, error) {
	page = page.Normalize()

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", c.entity, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.PerPage))

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", c.entity, err)
	}
	defer cur.Close(ctx)

	var docs []T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", c.entity, err)
	}

	out := make([]PT, 0, len(docs))
	for i := range docs {
		out = append(out, PT(&docs[i]))
	}
	return out, total, nil
}

// replace overwrites the stored document if it is still at doc's version.
// A missing document is NotFound and a newer stored version is Stale.
func (c collection[T, PT]) replace(ctx context.Context, doc PT) error {
	meta := doc.Meta()
	read, updatedAt := meta.Version, meta.UpdatedAt
	meta.Version = read + 1
	meta.UpdatedAt = time.Now().UTC()

	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": meta.ID, "version": read}, doc)
	if err == nil && res.MatchedCount == 1 {
		return nil
	}
	meta.Version, meta.UpdatedAt = read, updatedAt
	if err != nil {
		return c.mapWriteErr(err)
	}
	if _, err := c.get(ctx, meta.ID); err != nil {
		return err
	}
	return errors.Stale.Explain("%s %s was modified concurrently", c.entity, meta.ID.Hex())
}

func (c collection[T, PT]) delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.entity, err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFound.Explain("%s %s not found", c.entity, id.Hex())
	}
	return nil
}

func (c collection[T, PT]) mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Conflict.Explain("%s violates a unique constraint", c.entity)
	}
	return fmt.Errorf("write %s: %w", c.entity, err)
}
