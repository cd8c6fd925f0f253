package token

import (
	"context"

	"github.com/google/uuid"
)

// Store issues confirmation tokens bound to subscriber ids and resolves
// them back. Resolution never consumes or expires a token: repeated visits
// to a confirmation link must stay a no-op success.
type Store interface {
	// Issue generates a fresh token, persists its binding to the
	// subscriber and returns it.
	Issue(ctx context.Context, subscriberID uuid.UUID) (string, error)

	// Resolve returns the subscriber id a token authorizes, or
	// ErrInvalidToken if the token is unknown.
	Resolve(ctx context.Context, tok string) (uuid.UUID, error)
}
