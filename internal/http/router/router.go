package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"port-terminal-core/internal/http/handlers"
	ownmw "port-terminal-core/internal/http/middleware"
	"port-terminal-core/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, logger logx.Logger, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(ownmw.Observability(logger, reg))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
