package inventory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// holdLaptop takes an available laptop out of service. A laptop already in
// maintenance stays there.
func (s *Service) holdLaptop(ctx context.Context, laptopID primitive.ObjectID) (bool, error) {
	err := s.store.TransitionLaptopStatus(ctx, laptopID, models.LaptopAvailable, models.LaptopMaintenance)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errors.Conflict) {
		laptop, getErr := s.store.GetLaptop(ctx, laptopID)
		if getErr == nil && laptop.Status == models.LaptopMaintenance {
			return false, nil
		}
	}
	return false, err
}

// releaseLaptop returns the laptop to service unless another record still
// has work in progress on it.
func (s *Service) releaseLaptop(ctx context.Context, laptopID, recordID primitive.ObjectID) error {
	open, _, err := s.store.ListMaintenance(ctx, models.MaintenanceFilter{
		LaptopID: laptopID,
		Status:   models.MaintenanceInProgress,
	}, models.Page{Page: 1, PerPage: models.MaxPerPage})
	if err != nil {
		return err
	}
	for _, m := range open {
		if m.ID != recordID {
			return nil
		}
	}

	err = s.store.TransitionLaptopStatus(ctx, laptopID, models.LaptopMaintenance, models.LaptopAvailable)
	if err != nil && !errors.Is(err, errors.Conflict) && !errors.Is(err, errors.NotFound) {
		return err
	}
	return nil
}

func (s *Service) CreateMaintenance(ctx context.Context, req *models.CreateMaintenanceRequest) (*models.Maintenance, error) {
	s.validator.SanitizeAll(&req.Description, &req.Technician)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	laptopID, err := parseID("laptop", req.LaptopID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetLaptop(ctx, laptopID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.MaintenanceScheduled
	}

	held := false
	if status == models.MaintenanceInProgress {
		if held, err = s.holdLaptop(ctx, laptopID); err != nil {
			return nil, err
		}
	}

	record := &models.Maintenance{
		LaptopID:      laptopID,
		Type:          req.Type,
		Description:   req.Description,
		Cost:          req.Cost,
		ScheduledDate: req.ScheduledDate,
		Technician:    req.Technician,
		Status:        status,
	}
	if err := s.store.CreateMaintenance(ctx, record); err != nil {
		if held {
			s.restoreLaptop(ctx, laptopID, models.LaptopMaintenance, models.LaptopAvailable)
		}
		return nil, err
	}

	s.recorded(ctx, "maintenance", "create", events.MaintenanceCreated, record.ID, record)
	return record, nil
}

func (s *Service) GetMaintenance(ctx context.Context, id string) (*models.Maintenance, error) {
	oid, err := parseID("maintenance", id)
	if err != nil {
		return nil, err
	}
	return s.store.GetMaintenance(ctx, oid)
}

func (s *Service) ListMaintenance(ctx context.Context, filter models.MaintenanceFilter, page models.Page) ([]*models.Maintenance, int64, error) {
	return s.store.ListMaintenance(ctx, filter, page.Normalize())
}

// UpdateMaintenance applies field changes and drives the laptop status:
// in_progress holds the laptop, completed and cancelled release it.
func (s *Service) UpdateMaintenance(ctx context.Context, id string, req *models.UpdateMaintenanceRequest) (*models.Maintenance, error) {
	oid, err := parseID("maintenance", id)
	if err != nil {
		return nil, err
	}
	s.validator.SanitizeAll(req.Description, req.Technician)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	record, err := s.store.GetMaintenance(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !record.Status.Open() {
		return nil, errors.Conflict.Explain("maintenance record %s is %s", id, record.Status)
	}

	if req.Type != nil {
		record.Type = *req.Type
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Cost != nil {
		record.Cost = *req.Cost
	}
	if req.ScheduledDate != nil {
		record.ScheduledDate = req.ScheduledDate
	}
	if req.Technician != nil {
		record.Technician = *req.Technician
	}

	previous := record.Status
	held := false
	if req.Status != nil && *req.Status != previous {
		next := *req.Status
		if next == models.MaintenanceInProgress {
			if held, err = s.holdLaptop(ctx, record.LaptopID); err != nil {
				return nil, err
			}
		}
		if next == models.MaintenanceCompleted && record.CompletedDate == nil {
			now := s.now()
			record.CompletedDate = &now
		}
		record.Status = next
	}

	if err := s.store.UpdateMaintenance(ctx, record); err != nil {
		if held {
			s.restoreLaptop(ctx, record.LaptopID, models.LaptopMaintenance, models.LaptopAvailable)
		}
		return nil, err
	}

	if previous == models.MaintenanceInProgress && !record.Status.Open() {
		if err := s.releaseLaptop(ctx, record.LaptopID, record.ID); err != nil {
			return nil, err
		}
	}

	s.recorded(ctx, "maintenance", "update", events.MaintenanceUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteMaintenance(ctx context.Context, id string) error {
	oid, err := parseID("maintenance", id)
	if err != nil {
		return err
	}
	record, err := s.store.GetMaintenance(ctx, oid)
	if err != nil {
		return err
	}

	if err := s.store.DeleteMaintenance(ctx, oid); err != nil {
		return err
	}
	if record.Status == models.MaintenanceInProgress {
		if err := s.releaseLaptop(ctx, record.LaptopID, record.ID); err != nil {
			return err
		}
	}

	s.recorded(ctx, "maintenance", "delete", events.MaintenanceDeleted, oid, nil)
	return nil
}
