// Package store defines the persistence contract of the inventory service.
// All application logic depends only on these interfaces.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/models"
)

type LaptopStore interface {
	CreateLaptop(ctx context.Context, laptop *models.Laptop) error
	GetLaptop(ctx context.Context, id primitive.ObjectID) (*models.Laptop, error)
	GetLaptopBySerial(ctx context.Context, serial string) (*models.Laptop, error)
	ListLaptops(ctx context.Context, filter models.LaptopFilter, page models.Page) ([]*models.Laptop, int64, error)
	UpdateLaptop(ctx context.Context, laptop *models.Laptop) error
	DeleteLaptop(ctx context.Context, id primitive.ObjectID) error
	// TransitionLaptopStatus moves a laptop from one status to another and
	// fails with errors.Conflict if the laptop is not currently in from.
	TransitionLaptopStatus(ctx context.Context, id primitive.ObjectID, from, to models.LaptopStatus) error
}

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	ListEmployees(ctx context.Context, filter models.EmployeeFilter, page models.Page) ([]*models.Employee, int64, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id primitive.ObjectID) error
}

type AssignmentStore interface {
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	GetAssignment(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	ListAssignments(ctx context.Context, filter models.AssignmentFilter, page models.Page) ([]*models.Assignment, int64, error)
	UpdateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignment(ctx context.Context, id primitive.ObjectID) error
}

type MaintenanceStore interface {
	CreateMaintenance(ctx context.Context, record *models.Maintenance) error
	GetMaintenance(ctx context.Context, id primitive.ObjectID) (*models.Maintenance, error)
	ListMaintenance(ctx context.Context, filter models.MaintenanceFilter, page models.Page) ([]*models.Maintenance, int64, error)
	UpdateMaintenance(ctx context.Context, record *models.Maintenance) error
	DeleteMaintenance(ctx context.Context, id primitive.ObjectID) error
}

type IssueStore interface {
	CreateIssue(ctx context.Context, issue *models.Issue) error
	GetIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	ListIssues(ctx context.Context, filter models.IssueFilter, page models.Page) ([]*models.Issue, int64, error)
	UpdateIssue(ctx context.Context, issue *models.Issue) error
	DeleteIssue(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// Store aggregates every collection the service persists.
type Store interface {
	LaptopStore
	EmployeeStore
	AssignmentStore
	MaintenanceStore
	IssueStore
	UserStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
