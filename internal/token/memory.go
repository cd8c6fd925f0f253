package token

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps token bindings in a map, for tests and local runs.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]uuid.UUID)}
}

func (s *MemoryStore) Issue(ctx context.Context, subscriberID uuid.UUID) (string, error) {
	tok, err := Generate()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.tokens[tok] = subscriberID
	s.mu.Unlock()
	return tok, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, tok string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[tok]
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
