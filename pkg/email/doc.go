// Package email wraps the outbound email capability behind the EmailSender
// interface.
//
// Two implementations are provided: a Postmark-backed client for production
// and a DevSender that writes each email to disk for local development.
// Callers that need to react differently to "this recipient was refused"
// versus "the provider is down" match against ErrSendRejected and
// ErrTransportUnavailable respectively.
package email
