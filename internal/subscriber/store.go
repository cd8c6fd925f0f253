package subscriber

import (
	"context"

	"github.com/google/uuid"
)

// Store is the subscriber directory. It owns Subscriber records
// exclusively; no other component mutates them.
type Store interface {
	// Insert persists a pending subscriber. Returns ErrDuplicateEmail if
	// the email is already present; concurrent inserts of the same email
	// are serialized so exactly one wins.
	Insert(ctx context.Context, sub Subscriber) error

	// Confirm transitions the subscriber to StatusConfirmed. It is
	// idempotent: confirming an already-confirmed subscriber is a no-op
	// success. Returns ErrNotFound for an unknown id.
	Confirm(ctx context.Context, id uuid.UUID) error

	// ListConfirmed returns all confirmed subscribers. Stored emails are
	// re-validated at read time; entries that no longer parse are skipped
	// with a warning instead of aborting the listing.
	ListConfirmed(ctx context.Context) ([]Subscriber, error)
}
