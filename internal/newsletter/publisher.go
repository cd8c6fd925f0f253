package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/newsletter/internal/idempotency"
	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/pkg/email"
)

// issueTag labels newsletter sends for provider-side analytics.
const issueTag = "newsletter-issue"

// ConfirmedLister is the slice of the subscriber directory the pipeline
// reads.
type ConfirmedLister interface {
	ListConfirmed(ctx context.Context) ([]subscriber.Subscriber, error)
}

// Outcome is the acknowledgement of a publish run, also the payload stored
// in the idempotency ledger so replays return the original result.
type Outcome struct {
	Delivered   int       `json:"delivered"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	PublishedAt time.Time `json:"published_at"`
}

// Publisher delivers newsletter issues to every confirmed subscriber,
// exactly once per idempotency key.
type Publisher struct {
	subscribers  ConfirmedLister
	sender       email.EmailSender
	ledger       idempotency.Ledger
	log          *slog.Logger
	pollInterval time.Duration
}

// Option configures the publisher.
type Option func(*Publisher)

// WithPollInterval sets how often a publish call blocked on a concurrent
// run with the same key re-checks the ledger.
func WithPollInterval(d time.Duration) Option {
	if d <= 0 {
		panic("WithPollInterval: duration must be > 0")
	}
	return func(p *Publisher) { p.pollInterval = d }
}

// NewPublisher wires the delivery pipeline. A nil logger disables logging.
func NewPublisher(subscribers ConfirmedLister, sender email.EmailSender, ledger idempotency.Ledger, log *slog.Logger, opts ...Option) *Publisher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Publisher{
		subscribers:  subscribers,
		sender:       sender,
		ledger:       ledger,
		log:          log,
		pollInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish delivers the issue to every confirmed subscriber.
//
// The (caller, key) pair is claimed in the ledger before any email moves:
// a replayed key returns the stored outcome with zero additional sends, and
// a concurrent request with the same key waits for the winner's outcome
// instead of starting a second run.
//
// Per-subscriber failures are isolated: a rejected or invalid recipient is
// logged and skipped, never aborting delivery to the rest. Only a systemic
// transport failure aborts the run; the claim is then released so a retry
// with the same key resumes delivery.
func (p *Publisher) Publish(ctx context.Context, issue Issue, key, caller string) (Outcome, error) {
	if err := issue.Validate(); err != nil {
		return Outcome{}, err
	}

	claim, err := p.ledger.Begin(ctx, caller, key)
	if err != nil {
		return Outcome{}, err
	}

	switch claim.State {
	case idempotency.StateCompleted:
		return decodeOutcome(claim.Outcome)
	case idempotency.StateInProgress:
		return p.awaitOutcome(ctx, issue, key, caller)
	}

	return p.deliver(ctx, issue, key, caller)
}

// awaitOutcome polls the ledger while another call runs the same key. If
// the winner completes, its outcome is returned; if it releases the claim
// after a failure, this call takes over the delivery run.
func (p *Publisher) awaitOutcome(ctx context.Context, issue Issue, key, caller string) (Outcome, error) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Outcome{}, errors.Join(ErrPublishTimeout, ctx.Err())
		case <-ticker.C:
		}

		claim, err := p.ledger.Begin(ctx, caller, key)
		if err != nil {
			return Outcome{}, err
		}
		switch claim.State {
		case idempotency.StateCompleted:
			return decodeOutcome(claim.Outcome)
		case idempotency.StateFresh:
			return p.deliver(ctx, issue, key, caller)
		}
	}
}

// deliver runs the actual fan-out. The caller must hold a fresh claim.
func (p *Publisher) deliver(ctx context.Context, issue Issue, key, caller string) (Outcome, error) {
	subs, err := p.subscribers.ListConfirmed(ctx)
	if err != nil {
		p.releaseClaim(ctx, caller, key)
		return Outcome{}, err
	}

	outcome := Outcome{PublishedAt: time.Now().UTC()}
	for _, sub := range subs {
		// Stored addresses are re-validated right before the send; a row
		// that went bad since listing must not produce a transport call.
		if _, err := subscriber.ParseEmail(sub.Email); err != nil {
			p.log.WarnContext(ctx, "skipping subscriber with invalid stored email",
				"subscriber_id", sub.ID, "error", err)
			outcome.Skipped++
			continue
		}

		err := p.sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   sub.Email,
			Subject:  issue.Title,
			BodyHTML: issue.HTMLContent,
			BodyText: issue.TextContent,
			Tag:      issueTag,
		})
		switch {
		case err == nil:
			outcome.Delivered++
		case errors.Is(err, email.ErrTransportUnavailable):
			p.releaseClaim(ctx, caller, key)
			return Outcome{}, errors.Join(ErrDeliveryFailed, err)
		default:
			p.log.WarnContext(ctx, "failed to deliver issue to subscriber",
				"subscriber_id", sub.ID, "error", err)
			outcome.Failed++
		}
	}

	encoded, err := json.Marshal(outcome)
	if err != nil {
		p.releaseClaim(ctx, caller, key)
		return Outcome{}, errors.Join(errors.New("failed to encode publish outcome"), err)
	}
	if err := p.ledger.Complete(ctx, caller, key, encoded); err != nil {
		return Outcome{}, errors.Join(errors.New("failed to record publish outcome"), err)
	}

	p.log.InfoContext(ctx, "newsletter issue published",
		"title", issue.Title,
		"delivered", outcome.Delivered,
		"skipped", outcome.Skipped,
		"failed", outcome.Failed,
	)
	return outcome, nil
}

func (p *Publisher) releaseClaim(ctx context.Context, caller, key string) {
	if err := p.ledger.Release(ctx, caller, key); err != nil {
		p.log.ErrorContext(ctx, "failed to release idempotency claim",
			"caller", caller, "key", key, "error", err)
	}
}

func decodeOutcome(raw []byte) (Outcome, error) {
	var outcome Outcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		return Outcome{}, errors.Join(errors.New("failed to decode stored publish outcome"), err)
	}
	return outcome, nil
}
