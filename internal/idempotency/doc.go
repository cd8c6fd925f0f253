// Package idempotency implements the ledger that makes newsletter publish
// requests replay-safe.
//
// A (caller, idempotency key) pair is claimed atomically by Begin; the
// winner runs the operation and stores its outcome with Complete, or drops
// the claim with Release after a failure so a retry can re-execute. Every
// later Begin for a completed pair returns the stored outcome instead of
// letting side effects run again.
//
// Three backends share the contract: Postgres (primary-key insert), Redis
// (SETNX, with optional TTL) and an in-memory ledger for tests.
package idempotency
