// Package main provides the long-running analytics server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/signal-pulse/internal/analytics"
	"github.com/yourusername/signal-pulse/internal/config"
	"github.com/yourusername/signal-pulse/internal/database"
	"github.com/yourusername/signal-pulse/internal/feed"
	"github.com/yourusername/signal-pulse/internal/health"
	"github.com/yourusername/signal-pulse/internal/logger"
	"github.com/yourusername/signal-pulse/internal/metrics"
	"github.com/yourusername/signal-pulse/internal/repository"
	"github.com/yourusername/signal-pulse/internal/scheduler"
	"github.com/yourusername/signal-pulse/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	healthPort string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&healthPort, "health-port", "8080", "Port for the health check server")
}

var rootCmd = &cobra.Command{
	Use:   "signal-pulse-server",
	Short: "Serve forecast performance analytics",
	Long:  `Runs the analytics service with snapshot caching, periodic refresh, health checks, and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runServer() error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	params, err := analytics.FromConfig(&cfg.Analytics)
	if err != nil {
		return fmt.Errorf("invalid analytics config: %w", err)
	}

	repo, pinger, cleanup, err := buildOutcomeSource(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := service.NewAnalyticsService(repo, cfg.Feed.LookbackDays, appLogger)

	var provider service.SnapshotProvider = svc
	var refresher scheduler.SnapshotRefresher = svc
	if cfg.Cache.Enabled {
		cached := service.NewCachedAnalyticsService(svc, &cfg.Cache, appLogger)
		provider = cached
		refresher = cached
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        healthPort,
		Logger:      appLogger,
		Feed:        pinger,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(cfg, appLogger)
	}

	var sched *scheduler.Scheduler
	if cfg.Refresh.Enabled {
		sched = scheduler.NewScheduler(refresher, appLogger)
		if err := sched.ScheduleSnapshotRefresh(cfg.Refresh.IntervalSeconds, params); err != nil {
			return fmt.Errorf("failed to schedule snapshot refresh: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	// Warm the cache before declaring readiness
	if _, err := provider.GetSnapshot(ctx, params); err != nil {
		appLogger.WithError(err).Warn("Initial snapshot computation failed, continuing without warm cache")
	}
	healthServer.SetReady(true)

	appLogger.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"feed_source": cfg.Feed.Source,
		"version":     Version,
	}).Info("Analytics server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	appLogger.Info("Shutting down")
	healthServer.SetReady(false)
	if sched != nil {
		sched.Stop()
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		metricsServer.Shutdown(shutdownCtx)
	}
	cancel()

	return nil
}

func buildOutcomeSource(ctx context.Context, cfg *config.Config, appLogger *logrus.Logger) (repository.OutcomeRepository, health.FeedPinger, func(), error) {
	if cfg.Feed.Source == "http" {
		source := feed.NewRemoteOutcomeSource(&cfg.Feed, appLogger)
		return source, nil, func() { source.Close() }, nil
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repository.NewPostgresOutcomeRepository(db), db, db.Close, nil
}

func startMetricsServer(cfg *config.Config, appLogger *logrus.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Error("Metrics server error")
		}
	}()

	return server
}
