package subscriber

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/newsletter/pkg/pg"
)

// PostgresStore is the production subscriber directory. Email uniqueness is
// enforced by a unique index, so concurrent inserts of the same address are
// serialized by the database rather than application locks.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresStore wraps a pgx pool as a subscriber directory.
// A nil logger disables warning output.
func NewPostgresStore(pool *pgxpool.Pool, log *slog.Logger) *PostgresStore {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PostgresStore{pool: pool, log: log}
}

func (s *PostgresStore) Insert(ctx context.Context, sub Subscriber) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscribers (id, email, name, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.Email, sub.Name, sub.Status.String(), sub.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return errors.Join(errors.New("failed to insert subscriber"), err)
	}
	return nil
}

func (s *PostgresStore) Confirm(ctx context.Context, id uuid.UUID) error {
	// The update is unconditional on status: setting confirmed twice is
	// the documented no-op, and it keeps the transition monotonic without
	// a read-modify-write cycle.
	tag, err := s.pool.Exec(ctx,
		`UPDATE subscribers SET status = $1 WHERE id = $2`,
		StatusConfirmed.String(), id,
	)
	if err != nil {
		return errors.Join(errors.New("failed to confirm subscriber"), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListConfirmed(ctx context.Context) ([]Subscriber, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, email, name, status, created_at FROM subscribers WHERE status = $1`,
		StatusConfirmed.String(),
	)
	if err != nil {
		return nil, errors.Join(errors.New("failed to list confirmed subscribers"), err)
	}
	defer rows.Close()

	var out []Subscriber
	for rows.Next() {
		var sub Subscriber
		var status string
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Name, &status, &sub.CreatedAt); err != nil {
			return nil, errors.Join(errors.New("failed to scan subscriber row"), err)
		}
		sub.Status = Status(status)

		// Legacy rows may hold addresses the current rules reject; one bad
		// row must not take the whole listing down.
		if _, err := ParseEmail(sub.Email); err != nil {
			s.log.WarnContext(ctx, "skipping confirmed subscriber with invalid stored email",
				"subscriber_id", sub.ID, "error", err)
			continue
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(errors.New("failed to read subscriber rows"), err)
	}
	return out, nil
}
