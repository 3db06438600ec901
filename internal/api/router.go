package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds and returns the chi router with all routes configured.
// Endpoints are stateless and unauthenticated; each request is independent.
func NewRouter(handlers *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", handlers.Health)
	r.Get("/cities", handlers.Cities)
	r.Get("/weather", handlers.Weather)
	r.Get("/forecast", handlers.Forecast)

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
