package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"rickmorty/internal/character/handler"
	"rickmorty/internal/character/metrics"
	"rickmorty/internal/character/repository"
	"rickmorty/internal/character/service"
	"rickmorty/internal/character/upstream"
	"rickmorty/internal/platform/config"
	"rickmorty/internal/platform/health"
	"rickmorty/internal/platform/httpserver"
	"rickmorty/internal/platform/logger"
	"rickmorty/internal/platform/otel"
	"rickmorty/internal/platform/tracer"
	httptransport "rickmorty/internal/transport/http"
	"rickmorty/pkg/platform/middleware/request"
)

const serviceName = "rickmorty-gateway"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("initializing gateway",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"upstream", cfg.Upstream.BaseURL,
	)

	shutdownTracing, err := otel.Setup(ctx, serviceName, health.Version, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	characterMetrics := metrics.New(reg)
	t := tracer.NewOTel()

	client, err := upstream.New(cfg.Upstream.BaseURL,
		upstream.WithTimeout(cfg.Upstream.Timeout),
		upstream.WithLogger(log),
		upstream.WithMetrics(characterMetrics),
		upstream.WithTracer(t),
	)
	if err != nil {
		return err
	}

	svc := service.New(repository.New(client),
		service.WithLogger(log),
		service.WithTracer(t),
		service.WithMetrics(characterMetrics),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("upstream", client.Health)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Gatherer:       reg,
		Latency:        request.NewMetrics(reg),
		RequestTimeout: cfg.RequestTimeout,
		Health:         healthHandler,
		Features:       []httptransport.RouteRegistrar{handler.New(svc, log)},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
