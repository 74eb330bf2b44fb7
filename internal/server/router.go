package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-chi-calculator/internal/calcapi"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// Deps are the domain handlers mounted by NewRouter. Nil fields are skipped.
type Deps struct {
	Calculator *calcapi.Handler
	Ready      func(context.Context) error
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(deps.Ready))

	r.Handle("/metrics", observability.PrometheusHandler())

	if deps.Calculator != nil {
		calcapi.RegisterRoutes(r, deps.Calculator)
	}

	return r
}
