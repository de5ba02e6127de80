package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rickmorty/internal/character/handler"
	"rickmorty/internal/character/repository"
	"rickmorty/internal/character/service"
	"rickmorty/internal/character/upstream"
	"rickmorty/internal/character/upstream/upstreamtest"
	"rickmorty/internal/platform/health"
	"rickmorty/pkg/platform/middleware/request"
)

type testRouter struct {
	upstream *upstreamtest.Server
	registry *prometheus.Registry
	handler  http.Handler
}

func newTestRouter(t *testing.T, checks map[string]health.CheckFunc) *testRouter {
	t.Helper()
	srv := upstreamtest.NewServer(t)
	client, err := upstream.New(srv.URL())
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	reg := prometheus.NewRegistry()

	h := health.New("test")
	for name, check := range checks {
		h.RegisterCheck(name, check)
	}

	characters := handler.New(service.New(repository.New(client)), logger)

	return &testRouter{
		upstream: srv,
		registry: reg,
		handler: NewRouter(RouterConfig{
			Logger:         logger,
			Gatherer:       reg,
			Latency:        request.NewMetrics(reg),
			RequestTimeout: 5 * time.Second,
			Health:         h,
			Features:       []RouteRegistrar{characters},
		}),
	}
}

func (tr *testRouter) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouterServesCharacterRoutes(t *testing.T) {
	tr := newTestRouter(t, nil)
	tr.upstream.EnqueueJSON(http.StatusOK, upstreamtest.StatisticCollection)

	rec := tr.get("/api/characters/species-statistic?status=Alive&species=Human")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterRecordsLatencyByRoutePattern(t *testing.T) {
	tr := newTestRouter(t, nil)
	tr.upstream.EnqueueJSON(http.StatusOK, upstreamtest.RickSanchez)

	rec := tr.get("/api/characters/1")
	require.Equal(t, http.StatusOK, rec.Code)

	count, err := promtestutil.GatherAndCount(tr.registry, "rickmorty_endpoint_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	metricsRec := tr.get("/metrics")
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `endpoint="/api/characters/{id}"`)
}

func TestRouterHealthEndpoints(t *testing.T) {
	t.Run("liveness does not touch upstream", func(t *testing.T) {
		tr := newTestRouter(t, nil)

		rec := tr.get("/health/live")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, tr.upstream.RequestCount())
	})

	t.Run("readiness reports failing checks", func(t *testing.T) {
		tr := newTestRouter(t, map[string]health.CheckFunc{
			"upstream": func(context.Context) error { return errors.New("connection refused") },
		})

		rec := tr.get("/health/ready")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})

	t.Run("status is served", func(t *testing.T) {
		tr := newTestRouter(t, nil)

		rec := tr.get("/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"environment":"test"`)
	})
}

func TestRouterUnknownRoute(t *testing.T) {
	tr := newTestRouter(t, nil)

	rec := tr.get("/api/planets")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, tr.upstream.RequestCount())
}

func TestRouterUnknownPathsShareOneLatencySeries(t *testing.T) {
	tr := newTestRouter(t, nil)

	for _, path := range []string{"/nope/1", "/nope/2", "/nope/3", "/api/characters/1/extra"} {
		rec := tr.get(path)
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	count, err := promtestutil.GatherAndCount(tr.registry, "rickmorty_endpoint_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	metricsRec := tr.get("/metrics")
	assert.Contains(t, metricsRec.Body.String(), `endpoint="unmatched"`)
	assert.Zero(t, tr.upstream.RequestCount())
}
