package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsletter/internal/newsletter"
)

// SubscriptionService is the workflow surface the public endpoints expose.
type SubscriptionService interface {
	Submit(ctx context.Context, email, name string) (uuid.UUID, error)
	Confirm(ctx context.Context, token string) error
}

// PublishService is the delivery surface behind the admin endpoint.
type PublishService interface {
	Publish(ctx context.Context, issue newsletter.Issue, key, caller string) (newsletter.Outcome, error)
}

type handlers struct {
	subscriptions SubscriptionService
	publisher     PublishService
	health        func(context.Context) error
	log           *slog.Logger
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.respondError(w, r, err)
			return
		}
	}
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSubscribe accepts the signup form (name, email) and returns the new
// subscriber id. The subscriber stays pending until the emailed token comes
// back through handleConfirm.
func (h *handlers) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "malformed form data"})
		return
	}

	id, err := h.subscriptions.Submit(r.Context(), r.PostFormValue("email"), r.PostFormValue("name"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *handlers) handleConfirm(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("subscription_token")
	if tok == "" {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "subscription_token is required"})
		return
	}

	if err := h.subscriptions.Confirm(r.Context(), tok); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

type publishRequest struct {
	Title          string `json:"title"`
	TextContent    string `json:"text_content"`
	HTMLContent    string `json:"html_content"`
	IdempotencyKey string `json:"idempotency_key"`
}

// handlePublish delivers an issue to every confirmed subscriber. The caller
// identity scoping the idempotency key is the authenticated operator.
func (h *handlers) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	if req.IdempotencyKey == "" {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "idempotency_key is required"})
		return
	}

	issue := newsletter.Issue{
		Title:       req.Title,
		TextContent: req.TextContent,
		HTMLContent: req.HTMLContent,
	}

	outcome, err := h.publisher.Publish(r.Context(), issue, req.IdempotencyKey, operatorFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, outcome)
}
