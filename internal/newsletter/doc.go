// Package newsletter is the delivery pipeline: given an issue and an
// idempotency key, it fans the issue out to every confirmed subscriber with
// per-recipient failure isolation and at-most-once side effects per key.
package newsletter
