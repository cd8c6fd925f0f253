// Package token issues and resolves opaque subscription confirmation
// tokens. Tokens are server-side state: unguessable random strings whose
// only meaning is the stored binding to a subscriber id.
package token
