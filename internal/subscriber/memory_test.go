package subscriber_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal/subscriber"
)

func newTestSubscriber(t *testing.T, email string) subscriber.Subscriber {
	t.Helper()
	sub, err := subscriber.New(email, "le guin")
	require.NoError(t, err)
	return sub
}

func TestMemoryStore_Insert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores pending subscriber", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)
		sub := newTestSubscriber(t, "ursula@gmail.com")
		require.NoError(t, store.Insert(ctx, sub))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)
		require.NoError(t, store.Insert(ctx, newTestSubscriber(t, "ursula@gmail.com")))

		err := store.Insert(ctx, newTestSubscriber(t, "ursula@gmail.com"))
		assert.ErrorIs(t, err, subscriber.ErrDuplicateEmail)
	})
}

func TestMemoryStore_Confirm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("transitions pending to confirmed", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)
		sub := newTestSubscriber(t, "ursula@gmail.com")
		require.NoError(t, store.Insert(ctx, sub))

		require.NoError(t, store.Confirm(ctx, sub.ID))

		confirmed, err := store.ListConfirmed(ctx)
		require.NoError(t, err)
		require.Len(t, confirmed, 1)
		assert.Equal(t, subscriber.StatusConfirmed, confirmed[0].Status)
	})

	t.Run("second confirm is a no-op success", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)
		sub := newTestSubscriber(t, "ursula@gmail.com")
		require.NoError(t, store.Insert(ctx, sub))

		require.NoError(t, store.Confirm(ctx, sub.ID))
		require.NoError(t, store.Confirm(ctx, sub.ID))

		confirmed, err := store.ListConfirmed(ctx)
		require.NoError(t, err)
		assert.Len(t, confirmed, 1)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)
		err := store.Confirm(ctx, uuid.New())
		assert.ErrorIs(t, err, subscriber.ErrNotFound)
	})
}

func TestMemoryStore_ListConfirmed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("excludes pending subscribers", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)
		pending := newTestSubscriber(t, "pending@example.com")
		confirmed := newTestSubscriber(t, "confirmed@example.com")
		require.NoError(t, store.Insert(ctx, pending))
		require.NoError(t, store.Insert(ctx, confirmed))
		require.NoError(t, store.Confirm(ctx, confirmed.ID))

		got, err := store.ListConfirmed(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, confirmed.ID, got[0].ID)
	})

	t.Run("skips rows whose stored email no longer parses", func(t *testing.T) {
		t.Parallel()

		store := subscriber.NewMemoryStore(nil)

		// Bypass New to simulate legacy bad data the directory accepted
		// under older rules.
		legacy := subscriber.Subscriber{
			ID:        uuid.New(),
			Email:     "not-an-email",
			Name:      "legacy row",
			Status:    subscriber.StatusPending,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, store.Insert(ctx, legacy))
		require.NoError(t, store.Confirm(ctx, legacy.ID))

		good := newTestSubscriber(t, "ursula@gmail.com")
		require.NoError(t, store.Insert(ctx, good))
		require.NoError(t, store.Confirm(ctx, good.ID))

		got, err := store.ListConfirmed(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, good.ID, got[0].ID)
	})
}
