package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func (s *Store) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	err := s.employees.insert(ctx, employee)
	if errors.Is(err, errors.Conflict) {
		return errors.Conflict.Explain("employee with email %s already exists", employee.Email)
	}
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return s.employees.get(ctx, id)
}

func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return s.employees.findOne(ctx, bson.M{"email": email}, email)
}

func (s *Store) ListEmployees(ctx context.Context, f models.EmployeeFilter, page models.Page) ([]*models.Employee, int64, error) {
	filter := bson.M{}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return s.employees.list(ctx, filter, page)
}

func (s *Store) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	err := s.employees.replace(ctx, employee)
	if errors.Is(err, errors.Conflict) {
		return errors.Conflict.Explain("employee with email %s already exists", employee.Email)
	}
	return err
}

func (s *Store) DeleteEmployee(ctx context.Context, id primitive.ObjectID) error {
	return s.employees.delete(ctx, id)
}
