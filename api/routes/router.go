package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vasstra/vasstra-storefront/api/handlers"
	"github.com/vasstra/vasstra-storefront/api/middleware"
	"github.com/vasstra/vasstra-storefront/pkg/config"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
)

// NewRouter wires the operational surface: health and metrics only. The
// commerce stores are in-process state, not HTTP resources.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	checks map[string]handlers.Pinger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Recoverer(logg))

	r.Get("/healthz", handlers.Healthz(cfg, logg, checks))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}
