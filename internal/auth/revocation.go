package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList remembers revoked refresh token ids until they expire.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	// RevokeOnce revokes jti and reports whether this call did so. It is
	// false when jti was already revoked.
	RevokeOnce(ctx context.Context, jti string, until time.Time) (bool, error)
}

// MemoryRevocationList keeps revoked ids in process.
type MemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

func (l *MemoryRevocationList) Revoke(ctx context.Context, jti string, until time.Time) error {
	_, err := l.RevokeOnce(ctx, jti, until)
	return err
}

func (l *MemoryRevocationList) RevokeOnce(_ context.Context, jti string, until time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, exp := range l.revoked {
		if !exp.After(now) {
			delete(l.revoked, id)
		}
	}
	if _, ok := l.revoked[jti]; ok {
		return false, nil
	}
	l.revoked[jti] = until
	return true, nil
}

// RedisRevocationList stores revoked ids as keys that expire with the token,
// so revocations survive restarts and are shared between replicas.
type RedisRevocationList struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRevocationList(client redis.UniversalClient) *RedisRevocationList {
	return &RedisRevocationList{client: client, prefix: "laptrack:revoked:"}
}

func (l *RedisRevocationList) key(jti string) string {
	return l.prefix + jti
}

func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := l.client.Set(ctx, l.key(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RevokeOnce relies on SETNX so concurrent callers across replicas agree on
// a single winner. Expired tokens report false.
func (l *RedisRevocationList) RevokeOnce(ctx context.Context, jti string, until time.Time) (bool, error) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return false, nil
	}
	ok, err := l.client.SetNX(ctx, l.key(jti), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}
	return ok, nil
}
