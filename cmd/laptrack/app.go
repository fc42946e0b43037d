package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/internal/auth"
	"github.com/Aidin1998/laptrack/internal/config"
	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/internal/inventory"
	"github.com/Aidin1998/laptrack/internal/redisclient"
	"github.com/Aidin1998/laptrack/internal/store"
	"github.com/Aidin1998/laptrack/internal/store/memstore"
	"github.com/Aidin1998/laptrack/internal/store/mongostore"
	"github.com/Aidin1998/laptrack/pkg/validation"
)

// app holds the long lived dependencies shared by the commands.
type app struct {
	store     store.Store
	redis     redis.UniversalClient
	publisher events.Publisher
	inventory *inventory.Service
	auth      *auth.Service
	closers   []func(context.Context) error
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}
	ready := false
	defer func() {
		if !ready {
			_ = a.Close(context.Background())
		}
	}()

	var err error

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()
	a.store, err = store.New(connectCtx, cfg.Store, map[string]store.Constructor{
		store.ProviderMongoDB: mongostore.NewConstructor(logger),
		store.ProviderMemory:  memstore.Constructor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	a.closers = append(a.closers, a.store.Close)
	logger.Info("Store ready", zap.String("provider", cfg.Store.Provider))

	if cfg.Redis.Enabled() {
		client, err := redisclient.Connect(connectCtx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	}

	if cfg.Kafka.Enabled() {
		a.publisher = events.NewFanout(logger,
			events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger),
			events.NewLogPublisher(logger),
		)
		logger.Info("Publishing events to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	} else {
		a.publisher = events.NewLogPublisher(logger)
	}
	a.closers = append(a.closers, func(context.Context) error { return a.publisher.Close() })

	var revoked auth.RevocationList = auth.NewMemoryRevocationList()
	if a.redis != nil {
		revoked = auth.NewRedisRevocationList(a.redis)
	}

	v := validation.NewValidator(logger)
	a.inventory = inventory.NewService(a.store, v, a.publisher, logger)
	a.auth = auth.NewService(a.store, v, revoked, cfg.JWT, logger)
	ready = true
	return a, nil
}

// Close releases dependencies in reverse order of creation.
func (a *app) Close(ctx context.Context) error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i](ctx))
	}
	a.closers = nil
	return err
}
