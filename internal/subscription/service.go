package subscription

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/pkg/email"
)

// SubscriberStore is the slice of the directory the workflow needs.
type SubscriberStore interface {
	Insert(ctx context.Context, sub subscriber.Subscriber) error
	Confirm(ctx context.Context, id uuid.UUID) error
}

// TokenStore issues and resolves confirmation tokens.
type TokenStore interface {
	Issue(ctx context.Context, subscriberID uuid.UUID) (string, error)
	Resolve(ctx context.Context, tok string) (uuid.UUID, error)
}

// Service orchestrates subscription intake and confirmation.
type Service struct {
	subscribers SubscriberStore
	tokens      TokenStore
	sender      email.EmailSender
	baseURL     string
	log         *slog.Logger
}

// NewService wires the subscription workflow. baseURL is the public address
// of this service, used to build confirmation links. A nil logger disables
// logging.
func NewService(subscribers SubscriberStore, tokens TokenStore, sender email.EmailSender, baseURL string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		subscribers: subscribers,
		tokens:      tokens,
		sender:      sender,
		baseURL:     baseURL,
		log:         log,
	}
}

// Submit takes a raw signup, stores the subscriber as pending, issues a
// confirmation token and emails the confirmation link. It succeeds only
// after the email transport reports success.
//
// If the send fails, the pending row and its token are left in place: the
// directory insert and the email send cannot be made atomic across the
// transport boundary, and the token stays valid for a future resend.
func (s *Service) Submit(ctx context.Context, emailAddr, name string) (uuid.UUID, error) {
	sub, err := subscriber.New(emailAddr, name)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.subscribers.Insert(ctx, sub); err != nil {
		return uuid.Nil, err
	}

	tok, err := s.tokens.Issue(ctx, sub.ID)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.sender.SendEmail(ctx, confirmationEmail(sub, s.baseURL, tok)); err != nil {
		s.log.ErrorContext(ctx, "failed to send confirmation email",
			"subscriber_id", sub.ID, "error", err)
		return uuid.Nil, fmt.Errorf("failed to send confirmation email: %w", err)
	}

	s.log.InfoContext(ctx, "new subscriber stored as pending",
		"subscriber_id", sub.ID)
	return sub.ID, nil
}

// Confirm resolves a confirmation token and transitions the subscriber to
// confirmed. Repeated confirmations with the same token are no-op
// successes; an unknown token fails with token.ErrInvalidToken.
func (s *Service) Confirm(ctx context.Context, tok string) error {
	subscriberID, err := s.tokens.Resolve(ctx, tok)
	if err != nil {
		return err
	}

	if err := s.subscribers.Confirm(ctx, subscriberID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "subscriber confirmed", "subscriber_id", subscriberID)
	return nil
}
