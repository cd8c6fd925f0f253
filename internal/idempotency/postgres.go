package idempotency

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/newsletter/pkg/pg"
)

// PostgresLedger stores idempotency records in the idempotency_records
// table. The claim relies on the primary key over (caller, idempotency_key):
// INSERT ... ON CONFLICT DO NOTHING either wins the row atomically or
// observes the existing one, so two concurrent requests with the same key
// can never both reach StateFresh.
type PostgresLedger struct {
	pool *pgxpool.Pool
}

func NewPostgresLedger(pool *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{pool: pool}
}

func (l *PostgresLedger) Begin(ctx context.Context, caller, key string) (Claim, error) {
	if caller == "" || key == "" {
		return Claim{}, ErrInvalidKey
	}

	tag, err := l.pool.Exec(ctx,
		`INSERT INTO idempotency_records (caller, idempotency_key, state, created_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (caller, idempotency_key) DO NOTHING`,
		caller, key, string(StateInProgress),
	)
	if err != nil {
		return Claim{}, errors.Join(errors.New("failed to claim idempotency key"), err)
	}
	if tag.RowsAffected() == 1 {
		return Claim{State: StateFresh}, nil
	}

	var state string
	var outcome []byte
	err = l.pool.QueryRow(ctx,
		`SELECT state, outcome FROM idempotency_records WHERE caller = $1 AND idempotency_key = $2`,
		caller, key,
	).Scan(&state, &outcome)
	if err != nil {
		// The losing insert raced a Release; the pair is claimable again
		// but this call reports in progress and lets the caller retry.
		if pg.IsNotFoundError(err) {
			return Claim{State: StateInProgress}, nil
		}
		return Claim{}, errors.Join(errors.New("failed to read idempotency record"), err)
	}

	if State(state) == StateCompleted {
		return Claim{State: StateCompleted, Outcome: outcome}, nil
	}
	return Claim{State: StateInProgress}, nil
}

func (l *PostgresLedger) Complete(ctx context.Context, caller, key string, outcome []byte) error {
	if caller == "" || key == "" {
		return ErrInvalidKey
	}

	tag, err := l.pool.Exec(ctx,
		`UPDATE idempotency_records
		 SET state = $3, outcome = $4, completed_at = now()
		 WHERE caller = $1 AND idempotency_key = $2`,
		caller, key, string(StateCompleted), outcome,
	)
	if err != nil {
		return errors.Join(errors.New("failed to complete idempotency record"), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUnclaimed
	}
	return nil
}

func (l *PostgresLedger) Release(ctx context.Context, caller, key string) error {
	if caller == "" || key == "" {
		return ErrInvalidKey
	}

	tag, err := l.pool.Exec(ctx,
		`DELETE FROM idempotency_records
		 WHERE caller = $1 AND idempotency_key = $2 AND state = $3`,
		caller, key, string(StateInProgress),
	)
	if err != nil {
		return errors.Join(errors.New("failed to release idempotency record"), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUnclaimed
	}
	return nil
}
