package inventory

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func normalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}

func (s *Service) CreateLaptop(ctx context.Context, req *models.CreateLaptopRequest) (*models.Laptop, error) {
	req.SerialNumber = normalizeSerial(req.SerialNumber)
	s.validator.SanitizeAll(&req.Brand, &req.Model, &req.Location, &req.Notes, &req.Specs.Processor, &req.Specs.OS)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.LaptopAvailable
	}

	laptop := &models.Laptop{
		Brand:          req.Brand,
		Model:          req.Model,
		SerialNumber:   req.SerialNumber,
		Specs:          req.Specs,
		PurchaseDate:   req.PurchaseDate,
		PurchasePrice:  req.PurchasePrice,
		WarrantyExpiry: req.WarrantyExpiry,
		Status:         status,
		Location:       req.Location,
		Notes:          req.Notes,
	}
	if err := s.store.CreateLaptop(ctx, laptop); err != nil {
		return nil, err
	}

	s.recorded(ctx, "laptop", "create", events.LaptopCreated, laptop.ID, laptop)
	return laptop, nil
}

func (s *Service) GetLaptop(ctx context.Context, id string) (*models.Laptop, error) {
	oid, err := parseID("laptop", id)
	if err != nil {
		return nil, err
	}
	return s.store.GetLaptop(ctx, oid)
}

func (s *Service) ListLaptops(ctx context.Context, filter models.LaptopFilter, page models.Page) ([]*models.Laptop, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, errors.Invalid.Explain("unknown laptop status %q", filter.Status)
	}
	return s.store.ListLaptops(ctx, filter, page.Normalize())
}

func (s *Service) UpdateLaptop(ctx context.Context, id string, req *models.UpdateLaptopRequest) (*models.Laptop, error) {
	oid, err := parseID("laptop", id)
	if err != nil {
		return nil, err
	}
	if req.SerialNumber != nil {
		serial := normalizeSerial(*req.SerialNumber)
		req.SerialNumber = &serial
	}
	s.validator.SanitizeAll(req.Brand, req.Model, req.Location, req.Notes)
	if req.Specs != nil {
		s.validator.SanitizeAll(&req.Specs.Processor, &req.Specs.OS)
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	laptop, err := s.store.GetLaptop(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != laptop.Status {
		if *req.Status == models.LaptopAssigned {
			return nil, errors.Invalid.
				Explain("status %q is set by creating an assignment", models.LaptopAssigned).
				WithField("oneof", "status", "status cannot be set to assigned directly")
		}
		if laptop.Status == models.LaptopAssigned {
			return nil, errors.Conflict.Explain("laptop %s is assigned; return the assignment first", laptop.ID.Hex())
		}
		laptop.Status = *req.Status
	}
	if req.Brand != nil {
		laptop.Brand = *req.Brand
	}
	if req.Model != nil {
		laptop.Model = *req.Model
	}
	if req.SerialNumber != nil {
		laptop.SerialNumber = *req.SerialNumber
	}
	if req.Specs != nil {
		laptop.Specs = *req.Specs
	}
	if req.PurchaseDate != nil {
		laptop.PurchaseDate = req.PurchaseDate
	}
	if req.PurchasePrice != nil {
		laptop.PurchasePrice = *req.PurchasePrice
	}
	if req.WarrantyExpiry != nil {
		laptop.WarrantyExpiry = req.WarrantyExpiry
	}
	if req.Location != nil {
		laptop.Location = *req.Location
	}
	if req.Notes != nil {
		laptop.Notes = *req.Notes
	}

	if err := s.store.UpdateLaptop(ctx, laptop); err != nil {
		return nil, err
	}

	s.recorded(ctx, "laptop", "update", events.LaptopUpdated, laptop.ID, laptop)
	return laptop, nil
}

func (s *Service) DeleteLaptop(ctx context.Context, id string) error {
	oid, err := parseID("laptop", id)
	if err != nil {
		return err
	}
	if _, err := s.store.GetLaptop(ctx, oid); err != nil {
		return err
	}

	active, err := s.hasActiveAssignment(ctx, models.AssignmentFilter{LaptopID: oid})
	if err != nil {
		return err
	}
	if active {
		return errors.Conflict.Explain("laptop %s has an active assignment", id)
	}

	if err := s.store.DeleteLaptop(ctx, oid); err != nil {
		return err
	}

	s.recorded(ctx, "laptop", "delete", events.LaptopDeleted, oid, nil)
	return nil
}

// LaptopHistory is everything recorded against one laptop.
type LaptopHistory struct {
	Laptop      *models.Laptop        `json:"laptop"`
	Assignments []*models.Assignment  `json:"assignments"`
	Maintenance []*models.Maintenance `json:"maintenance"`
	Issues      []*models.Issue       `json:"issues"`
}

// LaptopHistory loads the laptop's assignments, maintenance and issues
// concurrently. Each list holds at most models.MaxPerPage newest entries.
func (s *Service) LaptopHistory(ctx context.Context, id string) (*LaptopHistory, error) {
	oid, err := parseID("laptop", id)
	if err != nil {
		return nil, err
	}
	laptop, err := s.store.GetLaptop(ctx, oid)
	if err != nil {
		return nil, err
	}

	history := &LaptopHistory{Laptop: laptop}
	page := models.Page{Page: 1, PerPage: models.MaxPerPage}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history.Assignments, _, err = s.store.ListAssignments(gctx, models.AssignmentFilter{LaptopID: oid}, page)
		return err
	})
	g.Go(func() error {
		var err error
		history.Maintenance, _, err = s.store.ListMaintenance(gctx, models.MaintenanceFilter{LaptopID: oid}, page)
		return err
	})
	g.Go(func() error {
		var err error
		history.Issues, _, err = s.store.ListIssues(gctx, models.IssueFilter{LaptopID: oid}, page)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return history, nil
}
