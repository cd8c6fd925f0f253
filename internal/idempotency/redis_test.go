package idempotency_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal/idempotency"
)

func newRedisLedger(t *testing.T, ttl time.Duration) (*idempotency.RedisLedger, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return idempotency.NewRedisLedger(client, ttl), srv
}

func TestRedisLedger_ClaimLifecycle(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newRedisLedger(t, 0)

	claim, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	assert.Equal(t, idempotency.StateFresh, claim.State)

	claim, err = ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	assert.Equal(t, idempotency.StateInProgress, claim.State)

	require.NoError(t, ledger.Complete(ctx, "operator", "key-1", []byte(`{"delivered":2}`)))

	claim, err = ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	assert.Equal(t, idempotency.StateCompleted, claim.State)
	assert.JSONEq(t, `{"delivered":2}`, string(claim.Outcome))
}

func TestRedisLedger_Release(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newRedisLedger(t, 0)

	_, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	require.NoError(t, ledger.Release(ctx, "operator", "key-1"))

	claim, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	assert.Equal(t, idempotency.StateFresh, claim.State, "released key must be claimable again")
}

func TestRedisLedger_ReleaseKeepsCompleted(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newRedisLedger(t, 0)

	_, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	require.NoError(t, ledger.Complete(ctx, "operator", "key-1", []byte(`{}`)))

	require.NoError(t, ledger.Release(ctx, "operator", "key-1"))

	claim, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	assert.Equal(t, idempotency.StateCompleted, claim.State)
}

func TestRedisLedger_CompleteUnclaimed(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newRedisLedger(t, 0)

	err := ledger.Complete(ctx, "operator", "never-begun", []byte(`{}`))
	assert.ErrorIs(t, err, idempotency.ErrUnclaimed)
}

func TestRedisLedger_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	ledger, srv := newRedisLedger(t, time.Minute)

	_, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	require.NoError(t, ledger.Complete(ctx, "operator", "key-1", []byte(`{}`)))

	// Past the TTL the record is gone and the key is claimable again.
	srv.FastForward(2 * time.Minute)

	claim, err := ledger.Begin(ctx, "operator", "key-1")
	require.NoError(t, err)
	assert.Equal(t, idempotency.StateFresh, claim.State)
}
