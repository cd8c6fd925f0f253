package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// inProgressMarker is the value held while a claim is open. Outcomes are
// JSON documents and can never collide with it.
const inProgressMarker = "!in-progress"

// releaseScript drops a claim only while it is still in progress, so a
// stale Release can never erase a completed record.
var releaseScript = redis.NewScript(
	`if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`,
)

// RedisLedger keeps idempotency records in Redis for deployments that do
// not want ledger rows in Postgres. SETNX provides the atomic
// claim-if-absent; records expire after the configured TTL, bounding how
// long a key suppresses replays.
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLedger wraps a redis client as a ledger. A zero ttl means records
// never expire.
func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, ttl: ttl}
}

func redisKey(caller, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", caller, key)
}

func (l *RedisLedger) Begin(ctx context.Context, caller, key string) (Claim, error) {
	if caller == "" || key == "" {
		return Claim{}, ErrInvalidKey
	}

	claimed, err := l.client.SetNX(ctx, redisKey(caller, key), inProgressMarker, l.ttl).Result()
	if err != nil {
		return Claim{}, errors.Join(errors.New("failed to claim idempotency key"), err)
	}
	if claimed {
		return Claim{State: StateFresh}, nil
	}

	val, err := l.client.Get(ctx, redisKey(caller, key)).Result()
	if err != nil {
		// Claim released or expired between SETNX and GET; report in
		// progress and let the caller's next Begin re-claim.
		if errors.Is(err, redis.Nil) {
			return Claim{State: StateInProgress}, nil
		}
		return Claim{}, errors.Join(errors.New("failed to read idempotency record"), err)
	}

	if val == inProgressMarker {
		return Claim{State: StateInProgress}, nil
	}
	return Claim{State: StateCompleted, Outcome: []byte(val)}, nil
}

func (l *RedisLedger) Complete(ctx context.Context, caller, key string, outcome []byte) error {
	if caller == "" || key == "" {
		return ErrInvalidKey
	}

	// XX: only overwrite an existing claim, never create a record that was
	// never begun.
	set, err := l.client.SetXX(ctx, redisKey(caller, key), outcome, l.ttl).Result()
	if err != nil {
		return errors.Join(errors.New("failed to complete idempotency record"), err)
	}
	if !set {
		return ErrUnclaimed
	}
	return nil
}

func (l *RedisLedger) Release(ctx context.Context, caller, key string) error {
	if caller == "" || key == "" {
		return ErrInvalidKey
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{redisKey(caller, key)}, inProgressMarker).Int64()
	if err != nil {
		return errors.Join(errors.New("failed to release idempotency record"), err)
	}
	if deleted == 0 {
		exists, err := l.client.Exists(ctx, redisKey(caller, key)).Result()
		if err != nil {
			return errors.Join(errors.New("failed to release idempotency record"), err)
		}
		// Completed records are left alone; only a missing claim is an error.
		if exists == 0 {
			return ErrUnclaimed
		}
	}
	return nil
}
