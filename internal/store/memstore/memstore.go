// Package memstore is an in-process store.Store used by tests and local runs.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/internal/config"
	"github.com/Aidin1998/laptrack/internal/store"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

type Store struct {
	mu sync.RWMutex

	laptops     *table[models.Laptop, *models.Laptop]
	employees   *table[models.Employee, *models.Employee]
	assignments *table[models.Assignment, *models.Assignment]
	maintenance *table[models.Maintenance, *models.Maintenance]
	issues      *table[models.Issue, *models.Issue]
	users       *table[models.User, *models.User]
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		laptops: newTable("laptop", func(l *models.Laptop) string {
			return l.SerialNumber
		}),
		employees: newTable("employee", func(e *models.Employee) string {
			return strings.ToLower(e.Email)
		}),
		assignments: newTable("assignment", func(a *models.Assignment) string {
			if a.Status != models.AssignmentActive {
				return ""
			}
			return a.LaptopID.Hex()
		}),
		maintenance: newTable[models.Maintenance, *models.Maintenance]("maintenance record", nil),
		issues:      newTable[models.Issue, *models.Issue]("issue", nil),
		users: newTable("user", func(u *models.User) string {
			return strings.ToLower(u.Email)
		}),
	}
}

// Constructor adapts New to the store factory.
func Constructor(context.Context, config.StoreConfig) (store.Store, error) {
	return New(), nil
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

// Laptops

func (s *Store) CreateLaptop(_ context.Context, l *models.Laptop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.laptops.insert(l); err != nil {
		if errors.Is(err, errors.Conflict) {
			return errors.Conflict.Explain("laptop with serial number %s already exists", l.SerialNumber)
		}
		return err
	}
	return nil
}

func (s *Store) GetLaptop(_ context.Context, id primitive.ObjectID) (*models.Laptop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.laptops.get(id)
}

func (s *Store) GetLaptopBySerial(_ context.Context, serial string) (*models.Laptop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.laptops.find(func(l *models.Laptop) bool { return l.SerialNumber == serial })
	if !ok {
		return nil, errors.NotFound.Explain("laptop %s not found", serial)
	}
	return l, nil
}

func (s *Store) ListLaptops(_ context.Context, f models.LaptopFilter, page models.Page) ([]*models.Laptop, int64, error) {
	search := strings.ToLower(f.Search)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, total := s.laptops.list(func(l *models.Laptop) bool {
		if f.Status != "" && l.Status != f.Status {
			return false
		}
		if f.Brand != "" && !strings.EqualFold(l.Brand, f.Brand) {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Brand), search) &&
			!strings.Contains(strings.ToLower(l.Model), search) &&
			!strings.Contains(strings.ToLower(l.SerialNumber), search) {
			return false
		}
		return true
	}, page)
	return out, total, nil
}

func (s *Store) UpdateLaptop(_ context.Context, l *models.Laptop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.laptops.replace(l); err != nil {
		if errors.Is(err, errors.Conflict) {
			return errors.Conflict.Explain("laptop with serial number %s already exists", l.SerialNumber)
		}
		return err
	}
	return nil
}

func (s *Store) DeleteLaptop(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.laptops.delete(id)
}

func (s *Store) TransitionLaptopStatus(_ context.Context, id primitive.ObjectID, from, to models.LaptopStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.laptops.rows[id]
	if !ok {
		return errors.NotFound.Explain("laptop %s not found", id.Hex())
	}
	if row.Status != from {
		return errors.Conflict.Explain("laptop %s is %s, expected %s", id.Hex(), row.Status, from)
	}
	row.Status = to
	row.UpdatedAt = time.Now().UTC()
	row.Version++
	s.laptops.rows[id] = row
	return nil
}

// Employees

func (s *Store) CreateEmployee(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.employees.insert(e); err != nil {
		if errors.Is(err, errors.Conflict) {
			return errors.Conflict.Explain("employee with email %s already exists", e.Email)
		}
		return err
	}
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employees.get(id)
}

func (s *Store) GetEmployeeByEmail(_ context.Context, email string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees.find(func(e *models.Employee) bool { return strings.EqualFold(e.Email, email) })
	if !ok {
		return nil, errors.NotFound.Explain("employee %s not found", email)
	}
	return e, nil
}

func (s *Store) ListEmployees(_ context.Context, f models.EmployeeFilter, page models.Page) ([]*models.Employee, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, total := s.employees.list(func(e *models.Employee) bool {
		return (f.Department == "" || e.Department == f.Department) &&
			(f.Status == "" || e.Status == f.Status)
	}, page)
	return out, total, nil
}

func (s *Store) UpdateEmployee(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.employees.replace(e); err != nil {
		if errors.Is(err, errors.Conflict) {
			return errors.Conflict.Explain("employee with email %s already exists", e.Email)
		}
		return err
	}
	return nil
}

func (s *Store) DeleteEmployee(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees.delete(id)
}

// Assignments

func (s *Store) CreateAssignment(_ context.Context, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.assignments.insert(a); err != nil {
		if errors.Is(err, errors.Conflict) {
			return errors.Conflict.Explain("laptop %s already has an active assignment", a.LaptopID.Hex())
		}
		return err
	}
	return nil
}

func (s *Store) GetAssignment(_ context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments.get(id)
}

func (s *Store) ListAssignments(_ context.Context, f models.AssignmentFilter, page models.Page) ([]*models.Assignment, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, total := s.assignments.list(func(a *models.Assignment) bool {
		return (f.LaptopID.IsZero() || a.LaptopID == f.LaptopID) &&
			(f.EmployeeID.IsZero() || a.EmployeeID == f.EmployeeID) &&
			(f.Status == "" || a.Status == f.Status)
	}, page)
	return out, total, nil
}

func (s *Store) UpdateAssignment(_ context.Context, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignments.replace(a)
}

func (s *Store) DeleteAssignment(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignments.delete(id)
}

// Maintenance

func (s *Store) CreateMaintenance(_ context.Context, m *models.Maintenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maintenance.insert(m)
}

func (s *Store) GetMaintenance(_ context.Context, id primitive.ObjectID) (*models.Maintenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maintenance.get(id)
}

func (s *Store) ListMaintenance(_ context.Context, f models.MaintenanceFilter, page models.Page) ([]*models.Maintenance, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, total := s.maintenance.list(func(m *models.Maintenance) bool {
		return (f.LaptopID.IsZero() || m.LaptopID == f.LaptopID) &&
			(f.Status == "" || m.Status == f.Status) &&
			(f.Type == "" || m.Type == f.Type)
	}, page)
	return out, total, nil
}

func (s *Store) UpdateMaintenance(_ context.Context, m *models.Maintenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maintenance.replace(m)
}

func (s *Store) DeleteMaintenance(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maintenance.delete(id)
}

// Issues

func (s *Store) CreateIssue(_ context.Context, i *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issues.insert(i)
}

func (s *Store) GetIssue(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issues.get(id)
}

func (s *Store) ListIssues(_ context.Context, f models.IssueFilter, page models.Page) ([]*models.Issue, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, total := s.issues.list(func(i *models.Issue) bool {
		return (f.LaptopID.IsZero() || i.LaptopID == f.LaptopID) &&
			(f.Status == "" || i.Status == f.Status) &&
			(f.Priority == "" || i.Priority == f.Priority)
	}, page)
	return out, total, nil
}

func (s *Store) UpdateIssue(_ context.Context, i *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issues.replace(i)
}

func (s *Store) DeleteIssue(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issues.delete(id)
}

// Users

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.users.insert(u); err != nil {
		if errors.Is(err, errors.Conflict) {
			return errors.Conflict.Explain("user with email %s already exists", u.Email)
		}
		return err
	}
	return nil
}

func (s *Store) GetUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id)
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return nil, errors.NotFound.Explain("user %s not found", email)
	}
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.replace(u)
}
