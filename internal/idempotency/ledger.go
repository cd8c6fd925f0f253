package idempotency

import "context"

// State describes what a Begin call observed for a (caller, key) pair.
type State string

const (
	// StateFresh means this call claimed the key; the caller must execute
	// the operation and finish with Complete or Release.
	StateFresh State = "fresh"
	// StateInProgress means another call holds the claim and has not
	// completed yet.
	StateInProgress State = "in_progress"
	// StateCompleted means the operation already ran; Claim.Outcome holds
	// the stored result.
	StateCompleted State = "completed"
)

// Claim is the result of a Begin call.
type Claim struct {
	State State
	// Outcome is the stored operation result, set only for StateCompleted.
	// The ledger treats it as opaque bytes; callers own the encoding.
	Outcome []byte
}

// Ledger records (caller, key) pairs so retried requests observe the first
// request's result instead of re-executing side effects.
//
// Begin is the sole serialization point for duplicate requests: of any
// number of concurrent Begin calls for the same pair, exactly one observes
// StateFresh. The row stays in progress until the winner calls Complete
// (stores the outcome) or Release (drops the claim so a retry can
// re-execute after a failure).
type Ledger interface {
	Begin(ctx context.Context, caller, key string) (Claim, error)
	Complete(ctx context.Context, caller, key string, outcome []byte) error
	Release(ctx context.Context, caller, key string) error
}
