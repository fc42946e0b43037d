package inventory

import (
	"context"
	"strings"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	req.Email = normalizeEmail(req.Email)
	s.validator.SanitizeAll(&req.FirstName, &req.LastName, &req.Department, &req.Position, &req.Phone)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Phone:      req.Phone,
		Status:     models.EmployeeActive,
	}
	if err := s.store.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}

	s.recorded(ctx, "employee", "create", events.EmployeeCreated, employee.ID, employee)
	return employee, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := parseID("employee", id)
	if err != nil {
		return nil, err
	}
	return s.store.GetEmployee(ctx, oid)
}

func (s *Service) ListEmployees(ctx context.Context, filter models.EmployeeFilter, page models.Page) ([]*models.Employee, int64, error) {
	if filter.Status != "" && filter.Status != models.EmployeeActive && filter.Status != models.EmployeeInactive {
		return nil, 0, errors.Invalid.Explain("unknown employee status %q", filter.Status)
	}
	return s.store.ListEmployees(ctx, filter, page.Normalize())
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	oid, err := parseID("employee", id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	s.validator.SanitizeAll(req.FirstName, req.LastName, req.Department, req.Position, req.Phone)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	employee, err := s.store.GetEmployee(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status == models.EmployeeInactive && employee.Status != models.EmployeeInactive {
		active, err := s.hasActiveAssignment(ctx, models.AssignmentFilter{EmployeeID: oid})
		if err != nil {
			return nil, err
		}
		if active {
			return nil, errors.Conflict.Explain("employee %s still holds an assigned laptop", id)
		}
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}

	if err := s.store.UpdateEmployee(ctx, employee); err != nil {
		return nil, err
	}

	s.recorded(ctx, "employee", "update", events.EmployeeUpdated, employee.ID, employee)
	return employee, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	oid, err := parseID("employee", id)
	if err != nil {
		return err
	}
	if _, err := s.store.GetEmployee(ctx, oid); err != nil {
		return err
	}

	active, err := s.hasActiveAssignment(ctx, models.AssignmentFilter{EmployeeID: oid})
	if err != nil {
		return err
	}
	if active {
		return errors.Conflict.Explain("employee %s still holds an assigned laptop", id)
	}

	if err := s.store.DeleteEmployee(ctx, oid); err != nil {
		return err
	}

	s.recorded(ctx, "employee", "delete", events.EmployeeDeleted, oid, nil)
	return nil
}

// EmployeeAssignments lists every assignment of one employee, newest first.
func (s *Service) EmployeeAssignments(ctx context.Context, id string, status models.AssignmentStatus, page models.Page) ([]*models.Assignment, int64, error) {
	oid, err := parseID("employee", id)
	if err != nil {
		return nil, 0, err
	}
	if _, err := s.store.GetEmployee(ctx, oid); err != nil {
		return nil, 0, err
	}
	return s.store.ListAssignments(ctx, models.AssignmentFilter{EmployeeID: oid, Status: status}, page.Normalize())
}
