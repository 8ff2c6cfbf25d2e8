// Package main provides the entry point for the analytics CLI tool.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/signal-pulse/internal/analytics"
	"github.com/yourusername/signal-pulse/internal/config"
	"github.com/yourusername/signal-pulse/internal/database"
	"github.com/yourusername/signal-pulse/internal/feed"
	"github.com/yourusername/signal-pulse/internal/repository"
	"github.com/yourusername/signal-pulse/internal/service"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		window       = flag.Int("window", 0, "Override rolling accuracy window")
		bucketWidth  = flag.Float64("bucket-width", 0, "Override calibration bucket width")
		minSamples   = flag.Int("min-samples", -1, "Override calibration min bucket samples")
		period       = flag.String("period", "", "Override period grouping: month, iso_week")
		lookbackDays = flag.Int("lookback-days", 0, "Override analysis window in days")
		output       = flag.String("output", "", "Output path for exported results")
		format       = flag.String("format", "console", "Output format: console, json, csv")
	)
	flag.Parse()

	logger := newLogger()
	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath, logger)
	params := buildParams(cfg, *window, *bucketWidth, *minSamples, *period, logger)
	repo, cleanup := buildOutcomeSource(ctx, cfg, logger)
	defer cleanup()

	lookback := cfg.Feed.LookbackDays
	if *lookbackDays > 0 {
		lookback = *lookbackDays
	}
	svc := service.NewAnalyticsService(repo, lookback, logger)

	snap, err := svc.GetSnapshot(ctx, params)
	if err != nil {
		logger.Fatalf("Failed to compute snapshot: %v", err)
	}

	writeResults(snap, *format, *output, logger)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

func loadConfigWithSecrets(path string, logger *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logger.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logger.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildParams(cfg *config.Config, window int, bucketWidth float64, minSamples int, period string, logger *logrus.Logger) analytics.Params {
	params, err := analytics.FromConfig(&cfg.Analytics)
	if err != nil {
		logger.Fatalf("Invalid analytics config: %v", err)
	}
	if window > 0 {
		params.RollingWindow = window
	}
	if bucketWidth > 0 {
		params.BucketWidth = bucketWidth
	}
	if minSamples >= 0 {
		params.MinBucketSamples = minSamples
	}
	if period != "" {
		params.PeriodKind = analytics.PeriodKind(period)
	}
	if err := params.Validate(); err != nil {
		logger.Fatalf("Invalid parameters: %v", err)
	}
	return params
}

func buildOutcomeSource(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.OutcomeRepository, func()) {
	if cfg.Feed.Source == "http" {
		source := feed.NewRemoteOutcomeSource(&cfg.Feed, logger)
		return source, func() { source.Close() }
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	return repository.NewPostgresOutcomeRepository(db), db.Close
}

func writeResults(snap *analytics.Snapshot, format string, output string, logger *logrus.Logger) {
	switch format {
	case "console":
		report := analytics.GenerateConsoleReport(snap)
		os.Stdout.WriteString(report)
	case "json":
		if output == "" {
			output = "./output/snapshot.json"
		}
		if err := analytics.ExportJSON(snap, output); err != nil {
			logger.Fatalf("Failed to export JSON: %v", err)
		}
		logger.WithField("path", output).Info("Snapshot exported")
	case "csv":
		if output == "" {
			output = "./output/snapshot.csv"
		}
		if err := analytics.ExportCSV(snap, output); err != nil {
			logger.Fatalf("Failed to export CSV: %v", err)
		}
		logger.WithField("path", output).Info("Snapshot exported")
	default:
		logger.Fatalf("Unsupported format: %s", format)
	}
}
