// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/internal/config"
	"github.com/Aidin1998/laptrack/internal/store"
	"github.com/Aidin1998/laptrack/pkg/models"
)

const (
	laptopsCollection     = "laptops"
	employeesCollection   = "employees"
	assignmentsCollection = "assignments"
	maintenanceCollection = "maintenance"
	issuesCollection      = "issues"
	usersCollection       = "users"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger

	laptops     collection[models.Laptop, *models.Laptop]
	employees   collection[models.Employee, *models.Employee]
	assignments collection[models.Assignment, *models.Assignment]
	maintenance collection[models.Maintenance, *models.Maintenance]
	issues      collection[models.Issue, *models.Issue]
	users       collection[models.User, *models.User]
}

var _ store.Store = (*Store)(nil)

// Connect dials MongoDB, verifies the connection and ensures indexes exist.
func Connect(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetRegistry(NewRegistry()).
		SetAppName("laptrack")

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := New(client.Database(cfg.Database), logger)
	s.client = client

	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))
	return s, nil
}

// NewConstructor adapts Connect to the store factory.
func NewConstructor(logger *zap.Logger) store.Constructor {
	return func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return Connect(ctx, cfg, logger)
	}
}

// New wraps an existing database handle. The caller owns the client.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:          db,
		logger:      logger,
		laptops:     newCollection[models.Laptop](db, laptopsCollection, "laptop"),
		employees:   newCollection[models.Employee](db, employeesCollection, "employee"),
		assignments: newCollection[models.Assignment](db, assignmentsCollection, "assignment"),
		maintenance: newCollection[models.Maintenance](db, maintenanceCollection, "maintenance record"),
		issues:      newCollection[models.Issue](db, issuesCollection, "issue"),
		users:       newCollection[models.User](db, usersCollection, "user"),
	}
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		laptopsCollection: {
			{Keys: bson.D{{Key: "serial_number", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_serial_number")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		employeesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "department", Value: 1}}},
		},
		assignmentsCollection: {
			// One active assignment per laptop.
			{
				Keys: bson.D{{Key: "laptop_id", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("uniq_active_laptop").
					SetPartialFilterExpression(bson.M{"status": models.AssignmentActive}),
			},
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		maintenanceCollection: {
			{Keys: bson.D{{Key: "laptop_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		issuesCollection: {
			{Keys: bson.D{{Key: "laptop_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "priority", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_user_email")},
		},
	}

	for name, specs := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client if this store opened it.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
