// Package subscriber is the directory of mailing-list members.
//
// A subscriber is created pending, transitions exactly once to confirmed,
// and never reverts. The package owns input validation (ParseEmail,
// ParseName), the Store contract, and its Postgres and in-memory
// implementations.
package subscriber
