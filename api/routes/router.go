package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotedesk/quotedesk-backend/api/controllers/health"
	"github.com/quotedesk/quotedesk-backend/api/controllers/quotes"
	"github.com/quotedesk/quotedesk-backend/api/middleware"
	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Quotes   *quotes.Handler
	Health   *health.Handler
	Registry *prometheus.Registry
}

// New assembles the HTTP surface. Quote endpoints sit behind bearer auth;
// probes and metrics stay open for the platform.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.CORS())

	r.Get("/health", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Config.JWT, deps.Logger))
		r.Post("/calculate-quote-totals", deps.Quotes.CalculateTotals)
		r.Post("/generate-quote-pdf", deps.Quotes.GeneratePDF)
	})

	return r
}
