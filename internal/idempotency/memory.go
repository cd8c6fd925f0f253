package idempotency

import (
	"context"
	"sync"
)

type memoryRecord struct {
	state   State
	outcome []byte
}

// MemoryLedger is a mutex-guarded in-memory ledger for tests and local
// development. The mutex makes Begin an atomic claim-if-absent, so the
// exactly-one-Fresh guarantee holds across goroutines.
type MemoryLedger struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[string]*memoryRecord)}
}

func recordKey(caller, key string) string {
	return caller + "\x00" + key
}

func (l *MemoryLedger) Begin(ctx context.Context, caller, key string) (Claim, error) {
	if caller == "" || key == "" {
		return Claim{}, ErrInvalidKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[recordKey(caller, key)]
	if !ok {
		l.records[recordKey(caller, key)] = &memoryRecord{state: StateInProgress}
		return Claim{State: StateFresh}, nil
	}
	if rec.state == StateCompleted {
		return Claim{State: StateCompleted, Outcome: rec.outcome}, nil
	}
	return Claim{State: StateInProgress}, nil
}

func (l *MemoryLedger) Complete(ctx context.Context, caller, key string, outcome []byte) error {
	if caller == "" || key == "" {
		return ErrInvalidKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[recordKey(caller, key)]
	if !ok {
		return ErrUnclaimed
	}
	rec.state = StateCompleted
	rec.outcome = outcome
	return nil
}

func (l *MemoryLedger) Release(ctx context.Context, caller, key string) error {
	if caller == "" || key == "" {
		return ErrInvalidKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[recordKey(caller, key)]
	if !ok {
		return ErrUnclaimed
	}
	// A completed record is immutable; releasing it would let a retry
	// re-run side effects that already happened.
	if rec.state == StateCompleted {
		return nil
	}
	delete(l.records, recordKey(caller, key))
	return nil
}
