package idempotency

import "errors"

var (
	// ErrInvalidKey indicates an empty caller identity or idempotency key.
	ErrInvalidKey = errors.New("idempotency.errors.invalid_key")
	// ErrUnclaimed indicates Complete or Release was called for a pair
	// that holds no in-progress claim.
	ErrUnclaimed = errors.New("idempotency.errors.unclaimed")
)
