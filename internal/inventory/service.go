// Package inventory implements the laptop, employee, assignment, maintenance
// and issue operations on top of store.Store.
package inventory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/internal/store"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/metrics"
	"github.com/Aidin1998/laptrack/pkg/models"
	"github.com/Aidin1998/laptrack/pkg/validation"
)

// Service coordinates inventory mutations. Cross-document rules such as
// "a laptop has at most one active assignment" are enforced here and backed by
// the store's atomic status transitions and unique indexes.
type Service struct {
	store     store.Store
	validator *validation.Validator
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(st store.Store, v *validation.Validator, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:     st,
		validator: v,
		publisher: publisher,
		logger:    logger.Named("inventory"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func parseID(entity, hex string) (primitive.ObjectID, error) {
	id, ok := models.ParseID(hex)
	if !ok {
		return primitive.NilObjectID, errors.Invalid.Explain("invalid %s id %q", entity, hex)
	}
	return id, nil
}

// actorID returns the authenticated user recorded on ctx, if any.
func actorID(ctx context.Context) *primitive.ObjectID {
	id, ok := models.ParseID(events.ActorFrom(ctx))
	if !ok {
		return nil
	}
	return &id
}

// recorded bumps the mutation counter and publishes the event. Publishing
// failures are logged and never fail the mutation that already happened.
func (s *Service) recorded(ctx context.Context, entity, action, eventType string, id primitive.ObjectID, data any) {
	metrics.InventoryMutations.WithLabelValues(entity, action).Inc()

	ev := events.New(eventType, id.Hex(), data)
	ev.Actor = events.ActorFrom(ctx)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("entity_id", id.Hex()),
			zap.Error(err),
		)
	}
}

func (s *Service) hasActiveAssignment(ctx context.Context, filter models.AssignmentFilter) (bool, error) {
	filter.Status = models.AssignmentActive
	_, total, err := s.store.ListAssignments(ctx, filter, models.Page{Page: 1, PerPage: 1})
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// restoreLaptop undoes a status transition after a failed follow-up write.
func (s *Service) restoreLaptop(ctx context.Context, id primitive.ObjectID, from, to models.LaptopStatus) {
	if err := s.store.TransitionLaptopStatus(ctx, id, from, to); err != nil {
		s.logger.Error("failed to roll back laptop status",
			zap.String("laptop_id", id.Hex()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err),
		)
	}
}

// restoreAssignment rewrites an assignment as it was before a failed return.
func (s *Service) restoreAssignment(ctx context.Context, a *models.Assignment) {
	if err := s.store.UpdateAssignment(ctx, a); err != nil {
		s.logger.Error("failed to roll back assignment",
			zap.String("assignment_id", a.ID.Hex()),
			zap.Error(err),
		)
	}
}
