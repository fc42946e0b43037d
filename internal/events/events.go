// Package events publishes inventory domain events.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the inventory service.
const (
	LaptopCreated = "laptop.created"
	LaptopUpdated = "laptop.updated"
	LaptopDeleted = "laptop.deleted"

	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"

	AssignmentCreated  = "assignment.created"
	AssignmentReturned = "assignment.returned"
	AssignmentDeleted  = "assignment.deleted"

	MaintenanceCreated = "maintenance.created"
	MaintenanceUpdated = "maintenance.updated"
	MaintenanceDeleted = "maintenance.deleted"

	IssueCreated = "issue.created"
	IssueUpdated = "issue.updated"
	IssueDeleted = "issue.deleted"
)

// Event describes a completed mutation. Data holds the document after the
// change, or nil for deletions.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	Actor      string    `json:"actor,omitempty"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType, entityID string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityID:   entityID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type actorKey struct{}

// WithActor records the authenticated user on ctx so published events carry it.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored by WithActor.
func ActorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
