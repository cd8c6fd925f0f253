package token

import "errors"

var (
	// ErrInvalidToken indicates the token does not resolve to a subscriber.
	ErrInvalidToken = errors.New("token.errors.invalid_token")
	// ErrGenerateFailed indicates the system randomness source failed.
	ErrGenerateFailed = errors.New("token.errors.generate_failed")
)
