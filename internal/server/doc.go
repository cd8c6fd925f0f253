// Package server is the HTTP surface: signup form intake, confirmation
// links, and the operator-only publish endpoint. It owns the mapping from
// the domain error taxonomy to HTTP status codes and nothing else; all
// behavior lives in the workflow packages it wraps.
package server
