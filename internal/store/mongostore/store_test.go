package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zaptest"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

const laptopsNS = "laptrack.laptops"

func newTestStore(mt *mtest.T) *Store {
	db := mt.Client.Database("laptrack", options.Database().SetRegistry(NewRegistry()))
	return New(db, zaptest.NewLogger(mt))
}

func laptopDoc(id primitive.ObjectID, status models.LaptopStatus) bson.D {
	price, _ := primitive.ParseDecimal128("1499.99")
	now := time.Now().UTC().Truncate(time.Millisecond)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
		{Key: "brand", Value: "Lenovo"},
		{Key: "model", Value: "X1 Carbon"},
		{Key: "serial_number", Value: "LNV-0001"},
		{Key: "specs", Value: bson.D{{Key: "ram_gb", Value: 16}}},
		{Key: "purchase_price", Value: price},
		{Key: "status", Value: string(status)},
	}
}

func TestLaptops(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		laptop := &models.Laptop{Brand: "Dell", Model: "XPS 13", SerialNumber: "DL-1", Status: models.LaptopAvailable}
		require.NoError(mt, s.CreateLaptop(ctx, laptop))
		assert.False(mt, laptop.ID.IsZero())
		assert.False(mt, laptop.CreatedAt.IsZero())
	})

	mt.Run("duplicate serial is a conflict", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: laptrack.laptops index: uniq_serial_number",
		}))

		err := s.CreateLaptop(ctx, &models.Laptop{SerialNumber: "DL-1"})
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, errors.Conflict))
		assert.Contains(mt, err.Error(), "DL-1")
	})

	mt.Run("get decodes decimal price", func(mt *mtest.T) {
		s := newTestStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, laptopsNS, mtest.FirstBatch, laptopDoc(id, models.LaptopAvailable)))

		laptop, err := s.GetLaptop(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, laptop.ID)
		assert.Equal(mt, 16, laptop.Specs.RAMGB)
		assert.True(mt, decimal.RequireFromString("1499.99").Equal(laptop.PurchasePrice))
	})

	mt.Run("get missing is not found", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, laptopsNS, mtest.FirstBatch))

		_, err := s.GetLaptop(ctx, primitive.NewObjectID())
		assert.True(mt, errors.Is(err, errors.NotFound))
	})

	mt.Run("list returns page and total", func(mt *mtest.T) {
		s := newTestStore(mt)
		first := mtest.CreateCursorResponse(1, laptopsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}})
		docs := mtest.CreateCursorResponse(0, laptopsNS, mtest.FirstBatch,
			laptopDoc(primitive.NewObjectID(), models.LaptopAvailable),
			laptopDoc(primitive.NewObjectID(), models.LaptopAssigned),
		)
		mt.AddMockResponses(first, docs)

		laptops, total, err := s.ListLaptops(ctx, models.LaptopFilter{Search: "lenovo"}, models.Page{Page: 1, PerPage: 10})
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, total)
		assert.Len(mt, laptops, 2)
	})

	mt.Run("transition succeeds when status matches", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := s.TransitionLaptopStatus(ctx, primitive.NewObjectID(), models.LaptopAvailable, models.LaptopAssigned)
		assert.NoError(mt, err)
	})

	mt.Run("transition conflicts when status differs", func(mt *mtest.T) {
		s := newTestStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(1, laptopsNS, mtest.FirstBatch, laptopDoc(id, models.LaptopAssigned)),
		)

		err := s.TransitionLaptopStatus(ctx, id, models.LaptopAvailable, models.LaptopAssigned)
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, errors.Conflict))
		assert.Contains(mt, err.Error(), "is assigned")
	})

	mt.Run("transition of missing laptop is not found", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, laptopsNS, mtest.FirstBatch),
		)

		err := s.TransitionLaptopStatus(ctx, primitive.NewObjectID(), models.LaptopAvailable, models.LaptopAssigned)
		assert.True(mt, errors.Is(err, errors.NotFound))
	})

	mt.Run("delete missing is not found", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := s.DeleteLaptop(ctx, primitive.NewObjectID())
		assert.True(mt, errors.Is(err, errors.NotFound))
	})

	mt.Run("update bumps version", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		laptop := &models.Laptop{Base: models.Base{ID: primitive.NewObjectID(), Version: 3}, SerialNumber: "DL-1"}
		require.NoError(mt, s.UpdateLaptop(ctx, laptop))
		assert.EqualValues(mt, 4, laptop.Version)
	})

	mt.Run("update of a changed laptop is stale", func(mt *mtest.T) {
		s := newTestStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(1, laptopsNS, mtest.FirstBatch, laptopDoc(id, models.LaptopAssigned)),
		)

		laptop := &models.Laptop{Base: models.Base{ID: id, Version: 3}, SerialNumber: "LNV-0001"}
		err := s.UpdateLaptop(ctx, laptop)
		assert.True(mt, errors.Is(err, errors.Stale))
		assert.False(mt, errors.Is(err, errors.Conflict))
		assert.EqualValues(mt, 3, laptop.Version)
	})

	mt.Run("update of missing laptop is not found", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, laptopsNS, mtest.FirstBatch),
		)

		err := s.UpdateLaptop(ctx, &models.Laptop{Base: models.Base{ID: primitive.NewObjectID(), Version: 1}})
		assert.True(mt, errors.Is(err, errors.NotFound))
	})
}

func TestUsersByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		s := newTestStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "laptrack.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "ops@example.com"},
			{Key: "name", Value: "Ops"},
			{Key: "password_hash", Value: "hash"},
			{Key: "role", Value: "admin"},
		}))

		u, err := s.GetUserByEmail(context.Background(), "ops@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, u.ID)
		assert.Equal(mt, models.RoleAdmin, u.Role)
		assert.Equal(mt, "hash", u.PasswordHash)
	})
}

func TestDecimalRoundTrip(t *testing.T) {
	reg := NewRegistry()
	in := struct {
		Price decimal.Decimal `bson:"price"`
	}{Price: decimal.RequireFromString("12.50")}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.IsType(t, primitive.Decimal128{}, decoded["price"])

	var out struct {
		Price decimal.Decimal `bson:"price"`
	}
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, in.Price.Equal(out.Price))
}
