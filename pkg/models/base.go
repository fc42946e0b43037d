// Package models holds the documents persisted by the inventory service and
// the request payloads accepted by its HTTP API.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base carries the identity and audit timestamps shared by every document.
// Version increments on every write; stores only replace a document whose
// stored version still matches the one that was read.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Version   int64              `bson:"version" json:"-"`
}

// Meta exposes the embedded Base so stores can stamp any document.
func (b *Base) Meta() *Base { return b }

// Document is implemented by every persisted entity.
type Document interface {
	Meta() *Base
}

// Stamp assigns an id on first write and refreshes the timestamps.
func (b *Base) Stamp(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if b.Version == 0 {
		b.Version = 1
	}
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage bounds Page so Skip cannot overflow.
	MaxPage = 1_000_000
)

// Page selects a window of a list result. Pages are 1-based.
type Page struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Normalize clamps the page into the supported range.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Skip returns the number of documents before this page.
func (p Page) Skip() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PerPage
}

// ParseID converts a hex string into an ObjectID. The boolean is false for
// malformed input.
func ParseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
