package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps bundles everything the router serves.
type Deps struct {
	Subscriptions SubscriptionService
	Publisher     PublishService
	Health        func(context.Context) error
	Operator      OperatorCredentials
	Log           *slog.Logger
}

// New builds the service router. The admin subtree is guarded by basic
// auth against the configured operator credentials.
func New(deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &handlers{
		subscriptions: deps.Subscriptions,
		publisher:     deps.Publisher,
		health:        deps.Health,
		log:           log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Post("/subscriptions", h.handleSubscribe)
	r.Get("/subscriptions/confirm", h.handleConfirm)

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(basicAuth(deps.Operator, log))
		admin.Post("/newsletters", h.handlePublish)
	})

	return r
}
