package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/auth"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/observability"
	"github.com/taskdeck/taskdeck/pkg/profiles"
	"github.com/taskdeck/taskdeck/pkg/supabase"
	"github.com/taskdeck/taskdeck/pkg/tasks"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	client, err := supabase.NewClient(
		cfg.Supabase.URL,
		cfg.Supabase.AnonKey,
		cfg.Supabase.ServiceKey,
		cfg.Supabase.Timeout,
	)
	if err != nil {
		log.Fatalf("Failed to create platform client: %v", err)
	}

	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
		client.SetObserver(func(service, status string, duration time.Duration) {
			metrics.PlatformRequestsTotal.WithLabelValues(service, status).Inc()
			metrics.PlatformRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
		})
	}

	server := api.NewServer(api.Deps{
		Logger:         logger,
		Metrics:        metrics,
		Verifier:       auth.NewSupabaseVerifier(client),
		TaskStore:      tasks.NewSupabaseStore(client),
		Profiles:       profiles.NewService(profiles.NewSupabaseStore(client), client, cfg.Supabase.AvatarBucket),
		Directory:      client,
		ClientURL:      cfg.Server.ClientURL,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	apiSrv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthSrv := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", apiSrv.Addr).Info("starting API server")
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.WithField("addr", healthSrv.Addr).Info("starting health server")
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("API server shutdown failed")
		}
		return healthSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server exited with error")
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
