package memstore

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func TestLaptopLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	l := &models.Laptop{Brand: "Apple", Model: "MacBook Pro", SerialNumber: "C02XYZ", Status: models.LaptopAvailable}
	require.NoError(t, s.CreateLaptop(ctx, l))
	require.False(t, l.ID.IsZero())

	got, err := s.GetLaptop(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro", got.Model)

	got.Model = "changed"
	again, err := s.GetLaptop(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro", again.Model, "reads must not alias stored rows")

	err = s.CreateLaptop(ctx, &models.Laptop{SerialNumber: "C02XYZ"})
	assert.True(t, errors.Is(err, errors.Conflict))

	bySerial, err := s.GetLaptopBySerial(ctx, "C02XYZ")
	require.NoError(t, err)
	assert.Equal(t, l.ID, bySerial.ID)

	require.NoError(t, s.DeleteLaptop(ctx, l.ID))
	_, err = s.GetLaptop(ctx, l.ID)
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.True(t, errors.Is(s.DeleteLaptop(ctx, l.ID), errors.NotFound))
}

func TestUpdateKeepsCreatedAtAndChecksUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := &models.Employee{FirstName: "Ada", Email: "ada@example.com"}
	b := &models.Employee{FirstName: "Bob", Email: "bob@example.com"}
	require.NoError(t, s.CreateEmployee(ctx, a))
	require.NoError(t, s.CreateEmployee(ctx, b))

	created := a.CreatedAt
	a.FirstName = "Augusta"
	require.NoError(t, s.UpdateEmployee(ctx, a))
	got, err := s.GetEmployee(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)
	assert.True(t, created.Equal(got.CreatedAt))

	b.Email = "ADA@example.com"
	err = s.UpdateEmployee(ctx, b)
	assert.True(t, errors.Is(err, errors.Conflict))

	missing := &models.Employee{Base: models.Base{ID: primitive.NewObjectID()}}
	assert.True(t, errors.Is(s.UpdateEmployee(ctx, missing), errors.NotFound))
}

func TestTransitionLaptopStatus(t *testing.T) {
	ctx := context.Background()
	s := New()
	l := &models.Laptop{SerialNumber: "SN-1", Status: models.LaptopAvailable}
	require.NoError(t, s.CreateLaptop(ctx, l))

	require.NoError(t, s.TransitionLaptopStatus(ctx, l.ID, models.LaptopAvailable, models.LaptopAssigned))
	err := s.TransitionLaptopStatus(ctx, l.ID, models.LaptopAvailable, models.LaptopAssigned)
	assert.True(t, errors.Is(err, errors.Conflict))

	err = s.TransitionLaptopStatus(ctx, primitive.NewObjectID(), models.LaptopAvailable, models.LaptopAssigned)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestOneActiveAssignmentPerLaptop(t *testing.T) {
	ctx := context.Background()
	s := New()
	laptop := primitive.NewObjectID()

	first := &models.Assignment{LaptopID: laptop, EmployeeID: primitive.NewObjectID(), Status: models.AssignmentActive}
	require.NoError(t, s.CreateAssignment(ctx, first))

	second := &models.Assignment{LaptopID: laptop, EmployeeID: primitive.NewObjectID(), Status: models.AssignmentActive}
	assert.True(t, errors.Is(s.CreateAssignment(ctx, second), errors.Conflict))

	first.Status = models.AssignmentReturned
	require.NoError(t, s.UpdateAssignment(ctx, first))
	assert.NoError(t, s.CreateAssignment(ctx, second))
}

func TestListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < 25; i++ {
		status := models.LaptopAvailable
		if i%5 == 0 {
			status = models.LaptopRetired
		}
		require.NoError(t, s.CreateLaptop(ctx, &models.Laptop{
			Brand:        "Dell",
			Model:        fmt.Sprintf("Latitude %d", i),
			SerialNumber: fmt.Sprintf("DL-%03d", i),
			Status:       status,
		}))
	}

	page, total, err := s.ListLaptops(ctx, models.LaptopFilter{Status: models.LaptopAvailable}, models.Page{Page: 2, PerPage: 15})
	require.NoError(t, err)
	assert.EqualValues(t, 20, total)
	assert.Len(t, page, 5)

	all, _, err := s.ListLaptops(ctx, models.LaptopFilter{}, models.Page{PerPage: 100})
	require.NoError(t, err)
	require.Len(t, all, 25)
	assert.Equal(t, "DL-024", all[0].SerialNumber, "newest first")

	found, total, err := s.ListLaptops(ctx, models.LaptopFilter{Search: "dl-01"}, models.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	assert.Len(t, found, 10)

	empty, total, err := s.ListLaptops(ctx, models.LaptopFilter{}, models.Page{Page: 9, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, empty)
}

func TestStaleUpdateIsRejected(t *testing.T) {
	ctx := context.Background()
	s := New()
	e := &models.Employee{FirstName: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.CreateEmployee(ctx, e))

	first, err := s.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	second, err := s.GetEmployee(ctx, e.ID)
	require.NoError(t, err)

	first.Position = "Engineer"
	require.NoError(t, s.UpdateEmployee(ctx, first))
	require.NoError(t, s.UpdateEmployee(ctx, first), "the written copy carries the new version")

	second.Phone = "555-0100"
	err = s.UpdateEmployee(ctx, second)
	assert.True(t, errors.Is(err, errors.Stale))
	assert.False(t, errors.Is(err, errors.Conflict))
	assert.Equal(t, 409, errors.HTTPStatus(err))

	got, err := s.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Position)
	assert.Empty(t, got.Phone)
}

func TestTransitionInvalidatesEarlierReads(t *testing.T) {
	ctx := context.Background()
	s := New()
	l := &models.Laptop{SerialNumber: "SN-2", Status: models.LaptopAvailable}
	require.NoError(t, s.CreateLaptop(ctx, l))

	read, err := s.GetLaptop(ctx, l.ID)
	require.NoError(t, err)
	require.NoError(t, s.TransitionLaptopStatus(ctx, l.ID, models.LaptopAvailable, models.LaptopAssigned))

	read.Location = "Berlin"
	assert.True(t, errors.Is(s.UpdateLaptop(ctx, read), errors.Stale))

	got, err := s.GetLaptop(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LaptopAssigned, got.Status)
}

func TestListHugePage(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateLaptop(ctx, &models.Laptop{SerialNumber: "SN-3"}))

	out, total, err := s.ListLaptops(ctx, models.LaptopFilter{}, models.Page{Page: math.MaxInt, PerPage: models.MaxPerPage})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Empty(t, out)
}
