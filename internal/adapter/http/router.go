package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rmacedo/contas/internal/adapter/http/handler"
	"github.com/rmacedo/contas/internal/adapter/http/middleware"
	"github.com/rmacedo/contas/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SaleHandler       *handler.SaleHandler
	DebtHandler       *handler.DebtHandler
	PermutaHandler    *handler.PermutaHandler
	AcertoHandler     *handler.AcertoHandler
	InstrumentHandler *handler.InstrumentHandler
	CommissionHandler *handler.CommissionHandler
	DueDateHandler    *handler.DueDateHandler
	TaxHandler        *handler.TaxHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Sales
		r.Route("/sales", func(r chi.Router) {
			r.Post("/", cfg.SaleHandler.Create)
			r.Get("/", cfg.SaleHandler.List)
			r.Get("/{id}", cfg.SaleHandler.Get)
			r.Put("/{id}", cfg.SaleHandler.Update)
			r.Delete("/{id}", cfg.SaleHandler.Delete)
			r.Get("/{id}/instruments", cfg.InstrumentHandler.ListBySale)
			r.Get("/{id}/commission", cfg.CommissionHandler.BySale)
		})

		// Seller commissions
		r.Route("/commissions", func(r chi.Router) {
			r.Get("/", cfg.CommissionHandler.List)
			r.Post("/{id}/pay", cfg.CommissionHandler.MarkPaid)
		})

		// Debts
		r.Route("/debts", func(r chi.Router) {
			r.Post("/", cfg.DebtHandler.Create)
			r.Get("/", cfg.DebtHandler.List)
			r.Get("/{id}", cfg.DebtHandler.Get)
			r.Put("/{id}", cfg.DebtHandler.Update)
			r.Delete("/{id}", cfg.DebtHandler.Delete)
			r.Get("/{id}/instruments", cfg.InstrumentHandler.ListByDebt)
		})

		// Trade-in credits
		r.Route("/permutas", func(r chi.Router) {
			r.Post("/", cfg.PermutaHandler.Create)
			r.Get("/", cfg.PermutaHandler.List)
			r.Get("/{id}", cfg.PermutaHandler.Get)
			r.Post("/{id}/cancel", cfg.PermutaHandler.Cancel)
		})

		// Running accounts
		r.Route("/acertos", func(r chi.Router) {
			r.Get("/", cfg.AcertoHandler.List)
			r.Get("/{id}", cfg.AcertoHandler.Get)
			r.Post("/{id}/settle", cfg.AcertoHandler.Settle)
			r.Post("/{id}/payoff", cfg.AcertoHandler.PayOff)
		})

		// Instruments
		r.Route("/instruments", func(r chi.Router) {
			r.Get("/{id}", cfg.InstrumentHandler.Get)
			r.Post("/{id}/clear", cfg.InstrumentHandler.MarkCleared)
			r.Post("/{id}/discount", cfg.InstrumentHandler.Discount)
			r.Post("/{id}/overdue", cfg.InstrumentHandler.ResolveOverdue)
			r.Get("/{id}/suggestion", cfg.InstrumentHandler.SuggestCharges)
		})

		// Due-date timelines
		r.Route("/duedates", func(r chi.Router) {
			r.Get("/receivables", cfg.DueDateHandler.Receivables)
			r.Get("/payables", cfg.DueDateHandler.Payables)
		})

		// Taxes
		r.Route("/taxes", func(r chi.Router) {
			r.Post("/", cfg.TaxHandler.Create)
			r.Get("/", cfg.TaxHandler.ListDue)
			r.Get("/{id}", cfg.TaxHandler.Get)
			r.Post("/{id}/pay", cfg.TaxHandler.MarkPaid)
			r.Delete("/{id}", cfg.TaxHandler.Delete)
		})
	})

	return r
}
