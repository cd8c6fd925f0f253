package subscriber

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory directory used by tests and
// local development. It honors the same contract as the Postgres store,
// including read-time email re-validation.
type MemoryStore struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]Subscriber
	byEmail map[string]uuid.UUID
	log     *slog.Logger
}

// NewMemoryStore creates an empty in-memory directory.
// A nil logger disables warning output.
func NewMemoryStore(log *slog.Logger) *MemoryStore {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MemoryStore{
		byID:    make(map[uuid.UUID]Subscriber),
		byEmail: make(map[string]uuid.UUID),
		log:     log,
	}
}

func (s *MemoryStore) Insert(ctx context.Context, sub Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[sub.Email]; exists {
		return ErrDuplicateEmail
	}
	s.byID[sub.ID] = sub
	s.byEmail[sub.Email] = sub.ID
	return nil
}

func (s *MemoryStore) Confirm(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	if sub.Status == StatusConfirmed {
		return nil
	}
	sub.Status = StatusConfirmed
	s.byID[id] = sub
	return nil
}

func (s *MemoryStore) ListConfirmed(ctx context.Context) ([]Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Subscriber
	for _, sub := range s.byID {
		if sub.Status != StatusConfirmed {
			continue
		}
		if _, err := ParseEmail(sub.Email); err != nil {
			s.log.WarnContext(ctx, "skipping confirmed subscriber with invalid stored email",
				"subscriber_id", sub.ID, "error", err)
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}
