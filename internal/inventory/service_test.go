package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/internal/store/memstore"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
	"github.com/Aidin1998/laptrack/pkg/validation"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// failingAssignments makes CreateAssignment fail after the laptop transition.
type failingAssignments struct {
	*memstore.Store
}

func (failingAssignments) CreateAssignment(context.Context, *models.Assignment) error {
	return errors.Unavailable.Explain("write failed")
}

// interleavedLaptopUpdate runs before between UpdateLaptop's read and write.
type interleavedLaptopUpdate struct {
	*memstore.Store
	before func()
}

func (s interleavedLaptopUpdate) UpdateLaptop(ctx context.Context, l *models.Laptop) error {
	s.before()
	return s.Store.UpdateLaptop(ctx, l)
}

// failingLaptopRelease fails the assigned -> available transition.
type failingLaptopRelease struct {
	*memstore.Store
}

func (f failingLaptopRelease) TransitionLaptopStatus(ctx context.Context, id primitive.ObjectID, from, to models.LaptopStatus) error {
	if to == models.LaptopAvailable {
		return errors.Unavailable.Explain("write failed")
	}
	return f.Store.TransitionLaptopStatus(ctx, id, from, to)
}

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memstore.Store
	publisher *recordingPublisher
	svc       *Service
}

func (s *ServiceSuite) SetupTest() {
	logger := zaptest.NewLogger(s.T())
	s.store = memstore.New()
	s.publisher = &recordingPublisher{}
	s.svc = NewService(s.store, validation.NewValidator(logger), s.publisher, logger)
	s.ctx = events.WithActor(context.Background(), primitive.NewObjectID().Hex())
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) laptop(serial string) *models.Laptop {
	l, err := s.svc.CreateLaptop(s.ctx, &models.CreateLaptopRequest{
		Brand:         "Lenovo",
		Model:         "ThinkPad T14",
		SerialNumber:  serial,
		PurchasePrice: decimal.RequireFromString("1299.00"),
	})
	s.Require().NoError(err)
	return l
}

func (s *ServiceSuite) employee(email string) *models.Employee {
	e, err := s.svc.CreateEmployee(s.ctx, &models.CreateEmployeeRequest{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      email,
		Department: "Engineering",
	})
	s.Require().NoError(err)
	return e
}

func (s *ServiceSuite) assign(l *models.Laptop, e *models.Employee) *models.Assignment {
	a, err := s.svc.CreateAssignment(s.ctx, &models.CreateAssignmentRequest{
		LaptopID:   l.ID.Hex(),
		EmployeeID: e.ID.Hex(),
	})
	s.Require().NoError(err)
	return a
}

func (s *ServiceSuite) laptopStatus(l *models.Laptop) models.LaptopStatus {
	got, err := s.store.GetLaptop(s.ctx, l.ID)
	s.Require().NoError(err)
	return got.Status
}

func (s *ServiceSuite) TestCreateLaptopDefaultsAndNormalizes() {
	l, err := s.svc.CreateLaptop(s.ctx, &models.CreateLaptopRequest{
		Brand:        "<b>Dell</b>",
		Model:        "XPS 13",
		SerialNumber: " dl-123 ",
		Notes:        "<script>alert(1)</script>spare",
	})
	s.Require().NoError(err)
	s.Equal(models.LaptopAvailable, l.Status)
	s.Equal("DL-123", l.SerialNumber)
	s.Equal("Dell", l.Brand)
	s.Equal("spare", l.Notes)
	s.Equal([]string{events.LaptopCreated}, s.publisher.types())

	_, err = s.svc.CreateLaptop(s.ctx, &models.CreateLaptopRequest{Brand: "Dell", Model: "XPS", SerialNumber: "DL-123"})
	s.True(errors.Is(err, errors.Conflict))
}

func (s *ServiceSuite) TestCreateLaptopValidation() {
	_, err := s.svc.CreateLaptop(s.ctx, &models.CreateLaptopRequest{
		Model:         "XPS",
		SerialNumber:  "x",
		PurchasePrice: decimal.NewFromInt(-1),
	})
	s.Require().True(errors.Is(err, errors.Invalid))

	var e *errors.Error
	s.Require().True(errors.As(err, &e))
	fields := map[string]string{}
	for _, f := range e.Fields {
		fields[f.Field] = f.Kind
	}
	s.Equal("required", fields["brand"])
	s.Equal("serial", fields["serial_number"])
	s.Equal("gte", fields["purchase_price"])
}

func (s *ServiceSuite) TestUpdateLaptopCannotSetAssigned() {
	l := s.laptop("SN-100")
	assigned := models.LaptopAssigned
	_, err := s.svc.UpdateLaptop(s.ctx, l.ID.Hex(), &models.UpdateLaptopRequest{Status: &assigned})
	s.True(errors.Is(err, errors.Invalid))

	retired := models.LaptopRetired
	loc := "Storage B"
	updated, err := s.svc.UpdateLaptop(s.ctx, l.ID.Hex(), &models.UpdateLaptopRequest{Status: &retired, Location: &loc})
	s.Require().NoError(err)
	s.Equal(models.LaptopRetired, updated.Status)
	s.Equal("Storage B", updated.Location)
}

func (s *ServiceSuite) TestAssignmentLifecycle() {
	l := s.laptop("SN-200")
	e := s.employee("grace@example.com")

	a := s.assign(l, e)
	s.Equal(models.AssignmentActive, a.Status)
	s.NotNil(a.AssignedBy)
	s.Equal(models.LaptopAssigned, s.laptopStatus(l))

	other := s.employee("ada@example.com")
	_, err := s.svc.CreateAssignment(s.ctx, &models.CreateAssignmentRequest{LaptopID: l.ID.Hex(), EmployeeID: other.ID.Hex()})
	s.True(errors.Is(err, errors.Conflict), "laptop is no longer available")

	retired := models.LaptopRetired
	_, err = s.svc.UpdateLaptop(s.ctx, l.ID.Hex(), &models.UpdateLaptopRequest{Status: &retired})
	s.True(errors.Is(err, errors.Conflict))

	s.True(errors.Is(s.svc.DeleteLaptop(s.ctx, l.ID.Hex()), errors.Conflict))
	s.True(errors.Is(s.svc.DeleteEmployee(s.ctx, e.ID.Hex()), errors.Conflict))
	s.True(errors.Is(s.svc.DeleteAssignment(s.ctx, a.ID.Hex()), errors.Conflict))

	returned, err := s.svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{Condition: "good"})
	s.Require().NoError(err)
	s.Equal(models.AssignmentReturned, returned.Status)
	s.NotNil(returned.ReturnDate)
	s.Equal("good", returned.ConditionOnReturn)
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))

	_, err = s.svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{})
	s.True(errors.Is(err, errors.Conflict))

	list, total, err := s.svc.EmployeeAssignments(s.ctx, e.ID.Hex(), "", models.Page{})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(list, 1)

	s.NoError(s.svc.DeleteAssignment(s.ctx, a.ID.Hex()))
	s.NoError(s.svc.DeleteEmployee(s.ctx, e.ID.Hex()))
	s.NoError(s.svc.DeleteLaptop(s.ctx, l.ID.Hex()))

	s.Contains(s.publisher.types(), events.AssignmentReturned)
}

func (s *ServiceSuite) TestAssignmentRequiresActiveEmployee() {
	l := s.laptop("SN-300")
	e := s.employee("inactive@example.com")
	inactive := models.EmployeeInactive
	_, err := s.svc.UpdateEmployee(s.ctx, e.ID.Hex(), &models.UpdateEmployeeRequest{Status: &inactive})
	s.Require().NoError(err)

	_, err = s.svc.CreateAssignment(s.ctx, &models.CreateAssignmentRequest{LaptopID: l.ID.Hex(), EmployeeID: e.ID.Hex()})
	s.True(errors.Is(err, errors.Conflict))
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))
}

func (s *ServiceSuite) TestAssignmentRollsBackLaptopOnWriteFailure() {
	l := s.laptop("SN-400")
	e := s.employee("rollback@example.com")

	logger := zaptest.NewLogger(s.T())
	svc := NewService(failingAssignments{s.store}, validation.NewValidator(logger), s.publisher, logger)
	_, err := svc.CreateAssignment(s.ctx, &models.CreateAssignmentRequest{LaptopID: l.ID.Hex(), EmployeeID: e.ID.Hex()})
	s.True(errors.Is(err, errors.Unavailable))
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))
}

func (s *ServiceSuite) TestAssignmentDates() {
	l := s.laptop("SN-500")
	e := s.employee("dates@example.com")
	assigned := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	before := assigned.Add(-24 * time.Hour)

	_, err := s.svc.CreateAssignment(s.ctx, &models.CreateAssignmentRequest{
		LaptopID:       l.ID.Hex(),
		EmployeeID:     e.ID.Hex(),
		AssignedDate:   &assigned,
		ExpectedReturn: &before,
	})
	s.True(errors.Is(err, errors.Invalid))
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))

	a, err := s.svc.CreateAssignment(s.ctx, &models.CreateAssignmentRequest{
		LaptopID:     l.ID.Hex(),
		EmployeeID:   e.ID.Hex(),
		AssignedDate: &assigned,
	})
	s.Require().NoError(err)
	_, err = s.svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{ReturnDate: &before})
	s.True(errors.Is(err, errors.Invalid))
}

func (s *ServiceSuite) TestMaintenanceMovesLaptop() {
	l := s.laptop("SN-600")

	m, err := s.svc.CreateMaintenance(s.ctx, &models.CreateMaintenanceRequest{
		LaptopID:    l.ID.Hex(),
		Type:        models.MaintenanceRepair,
		Description: "replace keyboard",
		Cost:        decimal.RequireFromString("89.90"),
	})
	s.Require().NoError(err)
	s.Equal(models.MaintenanceScheduled, m.Status)
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))

	inProgress := models.MaintenanceInProgress
	m, err = s.svc.UpdateMaintenance(s.ctx, m.ID.Hex(), &models.UpdateMaintenanceRequest{Status: &inProgress})
	s.Require().NoError(err)
	s.Equal(models.LaptopMaintenance, s.laptopStatus(l))

	completed := models.MaintenanceCompleted
	m, err = s.svc.UpdateMaintenance(s.ctx, m.ID.Hex(), &models.UpdateMaintenanceRequest{Status: &completed})
	s.Require().NoError(err)
	s.NotNil(m.CompletedDate)
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))

	_, err = s.svc.UpdateMaintenance(s.ctx, m.ID.Hex(), &models.UpdateMaintenanceRequest{Status: &inProgress})
	s.True(errors.Is(err, errors.Conflict), "closed records are immutable")
}

func (s *ServiceSuite) TestMaintenanceOnAssignedLaptopConflicts() {
	l := s.laptop("SN-700")
	s.assign(l, s.employee("busy@example.com"))

	_, err := s.svc.CreateMaintenance(s.ctx, &models.CreateMaintenanceRequest{
		LaptopID:    l.ID.Hex(),
		Type:        models.MaintenanceUpgrade,
		Description: "ram",
		Status:      models.MaintenanceInProgress,
	})
	s.True(errors.Is(err, errors.Conflict))
	s.Equal(models.LaptopAssigned, s.laptopStatus(l))
}

func (s *ServiceSuite) TestLaptopStaysInMaintenanceWhileWorkRemains() {
	l := s.laptop("SN-800")
	req := func() *models.CreateMaintenanceRequest {
		return &models.CreateMaintenanceRequest{
			LaptopID:    l.ID.Hex(),
			Type:        models.MaintenanceCleaning,
			Description: "fan",
			Status:      models.MaintenanceInProgress,
		}
	}
	first, err := s.svc.CreateMaintenance(s.ctx, req())
	s.Require().NoError(err)
	second, err := s.svc.CreateMaintenance(s.ctx, req())
	s.Require().NoError(err)

	cancelled := models.MaintenanceCancelled
	_, err = s.svc.UpdateMaintenance(s.ctx, first.ID.Hex(), &models.UpdateMaintenanceRequest{Status: &cancelled})
	s.Require().NoError(err)
	s.Equal(models.LaptopMaintenance, s.laptopStatus(l))

	s.Require().NoError(s.svc.DeleteMaintenance(s.ctx, second.ID.Hex()))
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))
}

func (s *ServiceSuite) TestIssueResolution() {
	l := s.laptop("SN-900")
	reporter := s.employee("reporter@example.com")

	issue, err := s.svc.CreateIssue(s.ctx, &models.CreateIssueRequest{
		LaptopID:    l.ID.Hex(),
		ReportedBy:  reporter.ID.Hex(),
		Title:       "Battery drains",
		Description: "Loses 50% per hour",
	})
	s.Require().NoError(err)
	s.Equal(models.IssueOpen, issue.Status)
	s.Equal(models.PriorityMedium, issue.Priority)

	resolved := models.IssueResolved
	fix := "Battery replaced"
	issue, err = s.svc.UpdateIssue(s.ctx, issue.ID.Hex(), &models.UpdateIssueRequest{Status: &resolved, Resolution: &fix})
	s.Require().NoError(err)
	s.Require().NotNil(issue.ResolvedAt)
	s.Equal(fix, issue.Resolution)

	reopened := models.IssueOpen
	issue, err = s.svc.UpdateIssue(s.ctx, issue.ID.Hex(), &models.UpdateIssueRequest{Status: &reopened})
	s.Require().NoError(err)
	s.Nil(issue.ResolvedAt)

	_, err = s.svc.CreateIssue(s.ctx, &models.CreateIssueRequest{
		LaptopID:    l.ID.Hex(),
		ReportedBy:  primitive.NewObjectID().Hex(),
		Title:       "Ghost",
		Description: "unknown reporter",
	})
	s.True(errors.Is(err, errors.NotFound))
}

func (s *ServiceSuite) TestLaptopHistory() {
	l := s.laptop("SN-1000")
	a := s.assign(l, s.employee("history@example.com"))
	_, err := s.svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{})
	s.Require().NoError(err)
	_, err = s.svc.CreateMaintenance(s.ctx, &models.CreateMaintenanceRequest{LaptopID: l.ID.Hex(), Type: models.MaintenanceInspection, Description: "yearly"})
	s.Require().NoError(err)
	_, err = s.svc.CreateIssue(s.ctx, &models.CreateIssueRequest{LaptopID: l.ID.Hex(), Title: "Hinge", Description: "loose"})
	s.Require().NoError(err)

	h, err := s.svc.LaptopHistory(s.ctx, l.ID.Hex())
	s.Require().NoError(err)
	s.Equal(l.ID, h.Laptop.ID)
	s.Len(h.Assignments, 1)
	s.Len(h.Maintenance, 1)
	s.Len(h.Issues, 1)

	_, err = s.svc.LaptopHistory(s.ctx, "not-an-id")
	s.True(errors.Is(err, errors.Invalid))
	_, err = s.svc.LaptopHistory(s.ctx, primitive.NewObjectID().Hex())
	s.True(errors.Is(err, errors.NotFound))
}

func (s *ServiceSuite) TestListLaptopsRejectsUnknownStatus() {
	_, _, err := s.svc.ListLaptops(s.ctx, models.LaptopFilter{Status: "lost"}, models.Page{})
	s.True(errors.Is(err, errors.Invalid))
}

func (s *ServiceSuite) TestCreateLaptopSanitizesBeforeValidating() {
	_, err := s.svc.CreateLaptop(s.ctx, &models.CreateLaptopRequest{
		Brand:        "<b></b>",
		Model:        "   ",
		SerialNumber: "SN-700",
	})
	var e *errors.Error
	s.Require().True(errors.As(err, &e))
	fields := map[string]string{}
	for _, f := range e.Fields {
		fields[f.Field] = f.Kind
	}
	s.Equal("required", fields["brand"])
	s.Equal("required", fields["model"])

	l, err := s.svc.CreateLaptop(s.ctx, &models.CreateLaptopRequest{
		Brand:        "Dell",
		Model:        "Latitude",
		SerialNumber: "SN-701",
		Notes:        "&lt;script&gt;alert(1)&lt;/script&gt;",
	})
	s.Require().NoError(err)
	s.NotContains(l.Notes, "<")

	empty := "<i> </i>"
	_, err = s.svc.UpdateLaptop(s.ctx, l.ID.Hex(), &models.UpdateLaptopRequest{Brand: &empty})
	s.True(errors.Is(err, errors.Invalid))
}

func (s *ServiceSuite) TestUpdateLaptopLosesRaceWithAssignment() {
	l := s.laptop("SN-800")
	e := s.employee("race@example.com")

	logger := zaptest.NewLogger(s.T())
	racing := interleavedLaptopUpdate{Store: s.store, before: func() { s.assign(l, e) }}
	svc := NewService(racing, validation.NewValidator(logger), s.publisher, logger)

	loc := "Berlin"
	_, err := svc.UpdateLaptop(s.ctx, l.ID.Hex(), &models.UpdateLaptopRequest{Location: &loc})
	s.True(errors.Is(err, errors.Stale))
	s.Equal(409, errors.HTTPStatus(err))
	s.Equal(models.LaptopAssigned, s.laptopStatus(l))
}

func (s *ServiceSuite) TestReturnRollsBackWhenLaptopReleaseFails() {
	l := s.laptop("SN-900")
	e := s.employee("release@example.com")
	a := s.assign(l, e)

	logger := zaptest.NewLogger(s.T())
	svc := NewService(failingLaptopRelease{s.store}, validation.NewValidator(logger), s.publisher, logger)
	_, err := svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{Condition: "good"})
	s.True(errors.Is(err, errors.Unavailable))

	got, err := s.store.GetAssignment(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.AssignmentActive, got.Status)
	s.Nil(got.ReturnDate)
	s.Equal(models.LaptopAssigned, s.laptopStatus(l))
	s.NotContains(s.publisher.types(), events.AssignmentReturned)

	_, err = s.svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{})
	s.Require().NoError(err)
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))
}

func (s *ServiceSuite) TestConcurrentReturnsSucceedOnce() {
	l := s.laptop("SN-901")
	e := s.employee("twice@example.com")
	a := s.assign(l, e)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.ReturnAssignment(s.ctx, a.ID.Hex(), &models.ReturnAssignmentRequest{})
			if err != nil {
				s.True(errors.Is(err, errors.Conflict), err.Error())
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	returned := 0
	for _, typ := range s.publisher.types() {
		if typ == events.AssignmentReturned {
			returned++
		}
	}
	s.Equal(1, returned)
	s.Equal(models.LaptopAvailable, s.laptopStatus(l))
}
