// Package ratelimit implements the request-rate gate: a fixed-window
// quota counted in Redis, shared by every process instance.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/prasetyarda/walletwise/internal/pkg/apperrors"
	"github.com/prasetyarda/walletwise/internal/pkg/database"
)

// Decision is the outcome of a single gate check.
type Decision struct {
	Allowed    bool
	Count      int64
	Remaining  int64
	Limit      int
	RetryAfter time.Duration
}

// Config holds gate configuration.
type Config struct {
	// Limit is the maximum number of requests per window.
	Limit int
	// Window is the length of the counting window.
	Window time.Duration
	// KeyPrefix namespaces the gate's counters in Redis.
	KeyPrefix string
}

// Gate decides, per key, whether a request may proceed. The key is a
// parameter: a constant key throttles the whole service with one shared
// budget, a per-caller key throttles each caller independently.
type Gate struct {
	redis *database.RedisClient
	cfg   Config
}

// NewGate creates a gate backed by the given Redis client.
func NewGate(redisClient *database.RedisClient, cfg Config) *Gate {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ratelimit"
	}
	return &Gate{
		redis: redisClient,
		cfg:   cfg,
	}
}

// Check records one attempt against the key's window and reports whether
// the request is admitted. Every call consumes quota, allow or deny; the
// increment-and-compare is a single atomic round trip, so two concurrent
// callers can never both take the last slot.
//
// A Redis failure is returned as a gate-unavailable error rather than a
// silent allow or deny; the caller owns the fail-open/fail-closed policy.
func (g *Gate) Check(ctx context.Context, key string) (Decision, error) {
	redisKey := fmt.Sprintf("%s:%s", g.cfg.KeyPrefix, key)

	count, err := g.redis.IncrWithExpiry(ctx, redisKey, g.cfg.Window)
	if err != nil {
		return Decision{}, apperrors.Wrap(apperrors.KindGateUnavailable, "rate limiter backend unavailable", err)
	}

	decision := Decision{
		Count: count,
		Limit: g.cfg.Limit,
	}

	if count <= int64(g.cfg.Limit) {
		decision.Allowed = true
		decision.Remaining = int64(g.cfg.Limit) - count
		return decision, nil
	}

	// Denied: read the remaining TTL so callers can set Retry-After.
	// Best effort; a TTL failure still denies.
	if ttl, err := g.redis.TTL(ctx, redisKey); err == nil && ttl > 0 {
		decision.RetryAfter = ttl
	}

	return decision, nil
}
