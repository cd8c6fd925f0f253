package idempotency_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal/idempotency"
)

func TestMemoryLedger_Begin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first begin is fresh", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		claim, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		assert.Equal(t, idempotency.StateFresh, claim.State)
	})

	t.Run("second begin sees in progress", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		_, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)

		claim, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		assert.Equal(t, idempotency.StateInProgress, claim.State)
	})

	t.Run("begin after complete returns stored outcome", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		_, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		require.NoError(t, ledger.Complete(ctx, "operator", "key-1", []byte(`{"delivered":3}`)))

		claim, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		assert.Equal(t, idempotency.StateCompleted, claim.State)
		assert.JSONEq(t, `{"delivered":3}`, string(claim.Outcome))
	})

	t.Run("same key different caller is independent", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		_, err := ledger.Begin(ctx, "alice", "key-1")
		require.NoError(t, err)

		claim, err := ledger.Begin(ctx, "bob", "key-1")
		require.NoError(t, err)
		assert.Equal(t, idempotency.StateFresh, claim.State)
	})

	t.Run("empty caller or key rejected", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		_, err := ledger.Begin(ctx, "", "key-1")
		assert.ErrorIs(t, err, idempotency.ErrInvalidKey)
		_, err = ledger.Begin(ctx, "operator", "")
		assert.ErrorIs(t, err, idempotency.ErrInvalidKey)
	})
}

func TestMemoryLedger_Release(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("released key is claimable again", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		_, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		require.NoError(t, ledger.Release(ctx, "operator", "key-1"))

		claim, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		assert.Equal(t, idempotency.StateFresh, claim.State)
	})

	t.Run("release never erases a completed record", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		_, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		require.NoError(t, ledger.Complete(ctx, "operator", "key-1", []byte(`{}`)))

		require.NoError(t, ledger.Release(ctx, "operator", "key-1"))

		claim, err := ledger.Begin(ctx, "operator", "key-1")
		require.NoError(t, err)
		assert.Equal(t, idempotency.StateCompleted, claim.State)
	})

	t.Run("release of unclaimed key fails", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		err := ledger.Release(ctx, "operator", "never-begun")
		assert.ErrorIs(t, err, idempotency.ErrUnclaimed)
	})
}

func TestMemoryLedger_Complete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("complete of unclaimed key fails", func(t *testing.T) {
		t.Parallel()

		ledger := idempotency.NewMemoryLedger()
		err := ledger.Complete(ctx, "operator", "never-begun", []byte(`{}`))
		assert.ErrorIs(t, err, idempotency.ErrUnclaimed)
	})
}

func TestMemoryLedger_ConcurrentBegin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ledger := idempotency.NewMemoryLedger()

	const goroutines = 32
	var fresh atomic.Int32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			claim, err := ledger.Begin(ctx, "operator", "contested-key")
			assert.NoError(t, err)
			if claim.State == idempotency.StateFresh {
				fresh.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fresh.Load(), "exactly one concurrent Begin must win the claim")
}
