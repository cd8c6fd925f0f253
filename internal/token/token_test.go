package token_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/internal/token"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("fixed length alphanumeric", func(t *testing.T) {
		t.Parallel()

		tok, err := token.Generate()
		require.NoError(t, err)
		assert.Len(t, tok, token.Length)

		const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
		for _, r := range tok {
			assert.True(t, strings.ContainsRune(alphanumeric, r), "unexpected character %q", r)
		}
	})

	t.Run("no collisions over many draws", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			tok, err := token.Generate()
			require.NoError(t, err)
			_, dup := seen[tok]
			require.False(t, dup, "duplicate token generated")
			seen[tok] = struct{}{}
		}
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issue then resolve", func(t *testing.T) {
		t.Parallel()

		store := token.NewMemoryStore()
		subscriberID := uuid.New()

		tok, err := store.Issue(ctx, subscriberID)
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		got, err := store.Resolve(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, subscriberID, got)
	})

	t.Run("resolve does not consume the token", func(t *testing.T) {
		t.Parallel()

		store := token.NewMemoryStore()
		subscriberID := uuid.New()

		tok, err := store.Issue(ctx, subscriberID)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			got, err := store.Resolve(ctx, tok)
			require.NoError(t, err)
			assert.Equal(t, subscriberID, got)
		}
	})

	t.Run("unknown token fails", func(t *testing.T) {
		t.Parallel()

		store := token.NewMemoryStore()
		_, err := store.Resolve(ctx, "nonexistent-token")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("separate issues yield separate tokens", func(t *testing.T) {
		t.Parallel()

		store := token.NewMemoryStore()
		subscriberID := uuid.New()

		first, err := store.Issue(ctx, subscriberID)
		require.NoError(t, err)
		second, err := store.Issue(ctx, subscriberID)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
