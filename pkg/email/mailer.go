package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender represents the outbound email capability. A send either
// succeeds or fails; callers classify failures via the sentinel errors in
// this package.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending a single email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`       // Email address of the recipient
	Subject  string `json:"subject"`       // Subject of the email
	BodyHTML string `json:"body_html"`     // HTML body of the email
	BodyText string `json:"body_text"`     // Plain-text body of the email
	Tag      string `json:"tag,omitempty"` // Optional, used for provider-side categorization
}

// Validate checks that all required fields are present and the recipient
// address parses. Invalid params never reach the wire.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyText) == "" {
		return fmt.Errorf("%w: BodyText is required", ErrInvalidParams)
	}
	return nil
}
