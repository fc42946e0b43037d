// Package ratelimit builds the per-client request limiter applied to /api.
package ratelimit

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/pkg/metrics"
)

const storePrefix = "laptrack:ratelimit"

// NewStore returns a Redis backed store when client is set so limits are
// shared between replicas, and an in-process store otherwise.
func NewStore(client redis.UniversalClient) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix}), nil
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}
	return store, nil
}

// Middleware limits requests per client IP using a "<limit>-<period>" rate
// such as "100-M". Rejections are answered with a 429 problem.
func Middleware(rate string, store limiter.Store, logger *zap.Logger) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	return ginlimiter.NewMiddleware(
		limiter.New(store, r),
		ginlimiter.WithLimitReachedHandler(func(c *gin.Context) {
			metrics.RateLimited.Inc()
			responses.TooManyRequests(c, fmt.Sprintf("rate limit of %d requests per %s exceeded", r.Limit, r.Period))
		}),
		ginlimiter.WithErrorHandler(func(c *gin.Context, err error) {
			// Fail open.
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
		}),
	), nil
}
