package subscriber

import "errors"

var (
	// ErrInvalidEmail indicates the email failed format validation.
	ErrInvalidEmail = errors.New("subscriber.errors.invalid_email")
	// ErrInvalidName indicates the display name failed validation.
	ErrInvalidName = errors.New("subscriber.errors.invalid_name")
	// ErrDuplicateEmail indicates the email is already present in the
	// directory. Duplicate signups are rejected, not upserted.
	ErrDuplicateEmail = errors.New("subscriber.errors.duplicate_email")
	// ErrNotFound indicates the subscriber id is unknown.
	ErrNotFound = errors.New("subscriber.errors.not_found")
)
