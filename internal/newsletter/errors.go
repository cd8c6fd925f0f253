package newsletter

import "errors"

var (
	// ErrInvalidIssue indicates a missing title or body.
	ErrInvalidIssue = errors.New("newsletter.errors.invalid_issue")
	// ErrDeliveryFailed indicates a systemic transport failure aborted the
	// delivery run. The idempotency claim is released, so retrying with
	// the same key resumes delivery instead of silently succeeding.
	ErrDeliveryFailed = errors.New("newsletter.errors.delivery_failed")
	// ErrPublishTimeout indicates waiting for a concurrent publish with
	// the same idempotency key exceeded the request context.
	ErrPublishTimeout = errors.New("newsletter.errors.publish_timeout")
)
