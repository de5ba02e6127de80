package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rickmorty/internal/platform/health"
	"rickmorty/pkg/platform/middleware/request"
)

// RouteRegistrar mounts a feature's routes on the shared router.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
	Latency        *request.Metrics
	RequestTimeout time.Duration
	Health         *health.Handler
	Features       []RouteRegistrar
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(cfg.Logger))
	if cfg.Latency != nil {
		r.Use(request.LatencyMiddleware(cfg.Latency))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(request.Timeout(cfg.RequestTimeout))
	}

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, f := range cfg.Features {
		f.Register(r)
	}

	return r
}
