package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skyfleet/registry/internal/api"
	"skyfleet/registry/internal/config"
	"skyfleet/registry/internal/logging"
	"skyfleet/registry/internal/middleware"
)

// RegisterRoutes builds the full HTTP surface. db may be nil when the
// GORM backend is active; the health check degrades gracefully.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, db *sqlx.DB, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(db, upSince))
	r.Handle("/metrics", promhttp.Handler())

	RegisterAPIRoutes(r, cfg, deps)

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
