package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/newsletter/internal/idempotency"
	"github.com/dmitrymomot/newsletter/internal/newsletter"
	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/internal/token"
	"github.com/dmitrymomot/newsletter/pkg/email"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError is the single place the error taxonomy becomes HTTP status
// codes. Validation, duplicate and token errors carry actionable messages;
// transport and unexpected errors return a generic body and keep the causal
// chain in the logs only.
func (h *handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, subscriber.ErrInvalidEmail),
		errors.Is(err, subscriber.ErrInvalidName),
		errors.Is(err, newsletter.ErrInvalidIssue),
		errors.Is(err, idempotency.ErrInvalidKey):
		h.respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, token.ErrInvalidToken):
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid confirmation token"})

	case errors.Is(err, subscriber.ErrDuplicateEmail):
		h.respond(w, http.StatusConflict, errorResponse{Error: "email is already subscribed"})

	default:
		h.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)

		status := http.StatusInternalServerError
		if errors.Is(err, email.ErrTransportUnavailable) ||
			errors.Is(err, newsletter.ErrDeliveryFailed) {
			status = http.StatusBadGateway
		}
		h.respond(w, status, errorResponse{Error: "internal error"})
	}
}
