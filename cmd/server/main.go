package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"mergington/internal/activities"
	activitymetrics "mergington/internal/activities/metrics"
	"mergington/internal/activities/store"
	"mergington/internal/platform/config"
	"mergington/internal/platform/httpserver"
	"mergington/internal/platform/logger"
	"mergington/internal/platform/metrics"
	httptransport "mergington/internal/transport/http"
	"mergington/web"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/activities.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := store.NewInMemory()
	if cfg.SeedFile != "" {
		if err := store.LoadSeedFile(ctx, registry, cfg.SeedFile); err != nil {
			return err
		}
		log.Info("loaded activity catalog", "seed_file", cfg.SeedFile)
	} else if err := store.SeedDefaultActivities(ctx, registry); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	activityMetrics := activitymetrics.New(reg)
	if n, err := registry.Count(ctx); err == nil {
		activityMetrics.SetActivities(n)
	}

	svc := activities.NewService(registry, log, activityMetrics)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Static:   staticFS(cfg.StaticDir),
		Modules:  []httptransport.Registrar{activities.NewHandler(svc, log)},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting mergington activities api", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func staticFS(dir string) fs.FS {
	if dir == "" {
		return web.Static()
	}
	return os.DirFS(dir)
}
