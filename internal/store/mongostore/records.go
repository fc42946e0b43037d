package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// Assignments

func (s *Store) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	err := s.assignments.insert(ctx, a)
	if errors.Is(err, errors.Conflict) {
		return errors.Conflict.Explain("laptop %s already has an active assignment", a.LaptopID.Hex())
	}
	return err
}

func (s *Store) GetAssignment(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return s.assignments.get(ctx, id)
}

func (s *Store) ListAssignments(ctx context.Context, f models.AssignmentFilter, page models.Page) ([]*models.Assignment, int64, error) {
	filter := bson.M{}
	if !f.LaptopID.IsZero() {
		filter["laptop_id"] = f.LaptopID
	}
	if !f.EmployeeID.IsZero() {
		filter["employee_id"] = f.EmployeeID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return s.assignments.list(ctx, filter, page)
}

func (s *Store) UpdateAssignment(ctx context.Context, a *models.Assignment) error {
	return s.assignments.replace(ctx, a)
}

func (s *Store) DeleteAssignment(ctx context.Context, id primitive.ObjectID) error {
	return s.assignments.delete(ctx, id)
}

// Maintenance

func (s *Store) CreateMaintenance(ctx context.Context, m *models.Maintenance) error {
	return s.maintenance.insert(ctx, m)
}

func (s *Store) GetMaintenance(ctx context.Context, id primitive.ObjectID) (*models.Maintenance, error) {
	return s.maintenance.get(ctx, id)
}

func (s *Store) ListMaintenance(ctx context.Context, f models.MaintenanceFilter, page models.Page) ([]*models.Maintenance, int64, error) {
	filter := bson.M{}
	if !f.LaptopID.IsZero() {
		filter["laptop_id"] = f.LaptopID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return s.maintenance.list(ctx, filter, page)
}

func (s *Store) UpdateMaintenance(ctx context.Context, m *models.Maintenance) error {
	return s.maintenance.replace(ctx, m)
}

func (s *Store) DeleteMaintenance(ctx context.Context, id primitive.ObjectID) error {
	return s.maintenance.delete(ctx, id)
}

// Issues

func (s *Store) CreateIssue(ctx context.Context, i *models.Issue) error {
	return s.issues.insert(ctx, i)
}

func (s *Store) GetIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	return s.issues.get(ctx, id)
}

func (s *Store) ListIssues(ctx context.Context, f models.IssueFilter, page models.Page) ([]*models.Issue, int64, error) {
	filter := bson.M{}
	if !f.LaptopID.IsZero() {
		filter["laptop_id"] = f.LaptopID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	return s.issues.list(ctx, filter, page)
}

func (s *Store) UpdateIssue(ctx context.Context, i *models.Issue) error {
	return s.issues.replace(ctx, i)
}

func (s *Store) DeleteIssue(ctx context.Context, id primitive.ObjectID) error {
	return s.issues.delete(ctx, id)
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	err := s.users.insert(ctx, u)
	if errors.Is(err, errors.Conflict) {
		return errors.Conflict.Explain("user with email %s already exists", u.Email)
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.get(ctx, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.findOne(ctx, bson.M{"email": email}, email)
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	return s.users.replace(ctx, u)
}
