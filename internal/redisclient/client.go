// Package redisclient opens the Redis connection shared by the rate limiter
// and the refresh token revocation list.
package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/internal/config"
)

const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	maxRetries   = 3
)

// Mode names the deployment topology selected by the configuration.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeSentinel Mode = "sentinel"
	ModeCluster  Mode = "cluster"
)

// ModeOf reports which client New will build for cfg.
func ModeOf(cfg config.RedisConfig) Mode {
	switch {
	case cfg.MasterName != "":
		return ModeSentinel
	case len(cfg.Addrs()) > 1:
		return ModeCluster
	default:
		return ModeSingle
	}
}

// New builds a client for cfg without connecting.
func New(cfg config.RedisConfig) redis.UniversalClient {
	addrs := cfg.Addrs()
	switch ModeOf(cfg) {
	case ModeSentinel:
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.MasterName,
			SentinelAddrs: addrs,
			Password:      cfg.Password,
			DB:            cfg.DB,
			PoolSize:      cfg.PoolSize,
			MaxRetries:    maxRetries,
			DialTimeout:   dialTimeout,
			ReadTimeout:   readTimeout,
			WriteTimeout:  writeTimeout,
		})
	case ModeCluster:
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        addrs,
			Password:     cfg.Password,
			PoolSize:     cfg.PoolSize,
			MaxRetries:   maxRetries,
			DialTimeout:  dialTimeout,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		})
	default:
		return redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			MaxRetries:   maxRetries,
			DialTimeout:  dialTimeout,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		})
	}
}

// Connect builds a client and pings it.
func Connect(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (redis.UniversalClient, error) {
	client := New(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Redis client connected",
		zap.Strings("addrs", cfg.Addrs()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
		zap.String("mode", string(ModeOf(cfg))),
	)
	return client, nil
}
