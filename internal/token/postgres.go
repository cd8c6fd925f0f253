package token

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/newsletter/pkg/pg"
)

// PostgresStore persists token bindings in the subscription_tokens table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Issue(ctx context.Context, subscriberID uuid.UUID) (string, error) {
	tok, err := Generate()
	if err != nil {
		return "", err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO subscription_tokens (token, subscriber_id, created_at) VALUES ($1, $2, now())`,
		tok, subscriberID,
	)
	if err != nil {
		return "", errors.Join(errors.New("failed to store confirmation token"), err)
	}
	return tok, nil
}

func (s *PostgresStore) Resolve(ctx context.Context, tok string) (uuid.UUID, error) {
	var subscriberID uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT subscriber_id FROM subscription_tokens WHERE token = $1`,
		tok,
	).Scan(&subscriberID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, errors.Join(errors.New("failed to resolve confirmation token"), err)
	}
	return subscriberID, nil
}
