package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// CreateAssignment hands an available laptop to an active employee. The laptop
// moves available -> assigned before the assignment is written and is moved
// back if the write fails.
func (s *Service) CreateAssignment(ctx context.Context, req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	s.validator.SanitizeAll(&req.Notes)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	laptopID, err := parseID("laptop", req.LaptopID)
	if err != nil {
		return nil, err
	}
	employeeID, err := parseID("employee", req.EmployeeID)
	if err != nil {
		return nil, err
	}

	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status != models.EmployeeActive {
		return nil, errors.Conflict.Explain("employee %s is %s", req.EmployeeID, employee.Status)
	}

	assignedDate := s.now()
	if req.AssignedDate != nil {
		assignedDate = req.AssignedDate.UTC()
	}
	if req.ExpectedReturn != nil && req.ExpectedReturn.Before(assignedDate) {
		return nil, errors.Invalid.
			Explain("expected return precedes the assignment date").
			WithField("gtfield", "expected_return", "expected_return must be after assigned_date")
	}

	if err := s.store.TransitionLaptopStatus(ctx, laptopID, models.LaptopAvailable, models.LaptopAssigned); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		LaptopID:       laptopID,
		EmployeeID:     employeeID,
		AssignedBy:     actorID(ctx),
		AssignedDate:   assignedDate,
		ExpectedReturn: req.ExpectedReturn,
		Status:         models.AssignmentActive,
		Notes:          req.Notes,
	}
	if err := s.store.CreateAssignment(ctx, assignment); err != nil {
		s.restoreLaptop(ctx, laptopID, models.LaptopAssigned, models.LaptopAvailable)
		return nil, err
	}

	s.recorded(ctx, "assignment", "create", events.AssignmentCreated, assignment.ID, assignment)
	return assignment, nil
}

func (s *Service) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	oid, err := parseID("assignment", id)
	if err != nil {
		return nil, err
	}
	return s.store.GetAssignment(ctx, oid)
}

func (s *Service) ListAssignments(ctx context.Context, filter models.AssignmentFilter, page models.Page) ([]*models.Assignment, int64, error) {
	if filter.Status != "" && filter.Status != models.AssignmentActive && filter.Status != models.AssignmentReturned {
		return nil, 0, errors.Invalid.Explain("unknown assignment status %q", filter.Status)
	}
	return s.store.ListAssignments(ctx, filter, page.Normalize())
}

// ReturnAssignment closes an active assignment and makes the laptop available.
func (s *Service) ReturnAssignment(ctx context.Context, id string, req *models.ReturnAssignmentRequest) (*models.Assignment, error) {
	oid, err := parseID("assignment", id)
	if err != nil {
		return nil, err
	}
	s.validator.SanitizeAll(&req.Condition, &req.Notes)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	assignment, err := s.store.GetAssignment(ctx, oid)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentActive {
		return nil, errors.Conflict.Explain("assignment %s was already returned", id)
	}

	returnDate := s.now()
	if req.ReturnDate != nil {
		returnDate = req.ReturnDate.UTC()
	}
	if returnDate.Before(assignment.AssignedDate) {
		return nil, errors.Invalid.
			Explain("return date precedes the assignment date").
			WithField("gtefield", "return_date", "return_date must not be before assigned_date")
	}

	active := *assignment
	assignment.Status = models.AssignmentReturned
	assignment.ReturnDate = &returnDate
	assignment.ConditionOnReturn = req.Condition
	if req.Notes != "" {
		assignment.Notes = req.Notes
	}
	// The versioned write lets exactly one concurrent return through.
	if err := s.store.UpdateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, errors.Stale) {
			return nil, errors.Conflict.Explain("assignment %s was already returned", id)
		}
		return nil, err
	}

	err = s.store.TransitionLaptopStatus(ctx, assignment.LaptopID, models.LaptopAssigned, models.LaptopAvailable)
	switch {
	case err == nil:
	case errors.Is(err, errors.Conflict), errors.Is(err, errors.NotFound):
		s.logger.Warn("laptop was not assigned when its assignment was returned",
			zap.String("assignment_id", id),
			zap.String("laptop_id", assignment.LaptopID.Hex()),
			zap.Error(err),
		)
	default:
		active.Version = assignment.Version
		s.restoreAssignment(ctx, &active)
		return nil, err
	}

	s.recorded(ctx, "assignment", "return", events.AssignmentReturned, assignment.ID, assignment)
	return assignment, nil
}

// DeleteAssignment removes a returned assignment. Active ones must be returned first.
func (s *Service) DeleteAssignment(ctx context.Context, id string) error {
	oid, err := parseID("assignment", id)
	if err != nil {
		return err
	}
	assignment, err := s.store.GetAssignment(ctx, oid)
	if err != nil {
		return err
	}
	if assignment.Status == models.AssignmentActive {
		return errors.Conflict.Explain("assignment %s is active; return it first", id)
	}

	if err := s.store.DeleteAssignment(ctx, oid); err != nil {
		return err
	}

	s.recorded(ctx, "assignment", "delete", events.AssignmentDeleted, oid, nil)
	return nil
}
