package email

import "errors"

var (
	// ErrInvalidConfig indicates the sender was constructed with an
	// incomplete configuration.
	ErrInvalidConfig = errors.New("mailer.errors.invalid_config")
	// ErrInvalidParams indicates the send parameters failed validation
	// before reaching the transport.
	ErrInvalidParams = errors.New("mailer.errors.invalid_params")
	// ErrSendRejected indicates the provider accepted the request but
	// refused this particular message or recipient.
	ErrSendRejected = errors.New("mailer.errors.send_rejected")
	// ErrTransportUnavailable indicates the provider could not be reached
	// at all (network, auth, rate-limit). Pipelines treat it as systemic.
	ErrTransportUnavailable = errors.New("mailer.errors.transport_unavailable")
)
