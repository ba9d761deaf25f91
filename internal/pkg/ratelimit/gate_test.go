package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/prasetyarda/walletwise/internal/pkg/apperrors"
	"github.com/prasetyarda/walletwise/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateTest(t *testing.T, limit int, window time.Duration) (*Gate, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gate := NewGate(&database.RedisClient{Client: client}, Config{
		Limit:  limit,
		Window: window,
	})

	return gate, mr
}

func TestGateCheck_AllowsUpToLimit(t *testing.T) {
	gate, _ := setupGateTest(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		decision, err := gate.Check(ctx, "svc")
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, int64(i), decision.Count)
		assert.Equal(t, int64(3-i), decision.Remaining)
	}

	decision, err := gate.Check(ctx, "svc")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, int64(4), decision.Count)
	assert.Equal(t, int64(0), decision.Remaining)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
}

func TestGateCheck_DenyStillConsumesQuota(t *testing.T) {
	gate, _ := setupGateTest(t, 1, time.Minute)
	ctx := context.Background()

	first, err := gate.Check(ctx, "svc")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	// Every check is accounted, allow or deny
	for i := 2; i <= 4; i++ {
		decision, err := gate.Check(ctx, "svc")
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, int64(i), decision.Count)
	}
}

func TestGateCheck_ConcurrentNeverOverAdmits(t *testing.T) {
	const (
		limit   = 5
		callers = 40
	)

	gate, _ := setupGateTest(t, limit, time.Minute)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		allowed int64
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := gate.Check(ctx, "svc")
			if err == nil && decision.Allowed {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limit), allowed)
}

func TestGateCheck_WindowReset(t *testing.T) {
	gate, mr := setupGateTest(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := gate.Check(ctx, "svc")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}

	decision, err := gate.Check(ctx, "svc")
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	// Window expires, quota is fresh again
	mr.FastForward(time.Minute + time.Second)

	decision, err = gate.Check(ctx, "svc")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, int64(1), decision.Count)
}

func TestGateCheck_KeysAreIndependent(t *testing.T) {
	gate, _ := setupGateTest(t, 1, time.Minute)
	ctx := context.Background()

	first, err := gate.Check(ctx, "caller-a")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	denied, err := gate.Check(ctx, "caller-a")
	require.NoError(t, err)
	assert.False(t, denied.Allowed)

	// A different key has its own budget
	other, err := gate.Check(ctx, "caller-b")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestGateCheck_BackendUnavailable(t *testing.T) {
	gate, mr := setupGateTest(t, 3, time.Minute)
	mr.Close()

	_, err := gate.Check(context.Background(), "svc")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindGateUnavailable, apperrors.KindOf(err))
}
