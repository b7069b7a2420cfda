package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/timebank/internal/adapter/http/handler"
	"github.com/iho/timebank/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger           zerolog.Logger
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	ScheduledHandler *handler.ScheduledHandler
	HealthHandler    *handler.HealthHandler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/top", cfg.AccountHandler.Top)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/deposits", cfg.AccountHandler.Deposit)
				r.Post("/withdrawals", cfg.AccountHandler.Withdraw)
				r.Get("/balance", cfg.AccountHandler.Balance)
				r.Get("/volume", cfg.AccountHandler.Volume)
				r.Get("/history", cfg.AccountHandler.History)
				r.Get("/scheduled", cfg.ScheduledHandler.ListByAccount)
			})
		})

		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Post("/{id}/accept", cfg.TransferHandler.Accept)
			r.Get("/{id}/status", cfg.TransferHandler.Status)
		})

		r.Route("/scheduled-transfers", func(r chi.Router) {
			r.Post("/", cfg.ScheduledHandler.Create)
			r.Post("/process", cfg.ScheduledHandler.Process)
		})
	})

	return r
}
