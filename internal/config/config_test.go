// Package config provides configuration management for the signal-pulse service.
package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath     = "testdata/valid_config.yaml"
	expansionConfigPath = "testdata/expansion_config.yaml"
	expectedNoErrorMsg  = "expected no error, got %v"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.App.Name != "signal-pulse" {
		t.Errorf("expected app name 'signal-pulse', got '%s'", cfg.App.Name)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Analytics.RollingWindow != 30 {
		t.Errorf("expected rolling window 30, got %d", cfg.Analytics.RollingWindow)
	}
	if cfg.Analytics.PeriodGrouping != "month" {
		t.Errorf("expected period grouping 'month', got '%s'", cfg.Analytics.PeriodGrouping)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load("testdata/nonexistent_config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvExpansion tests ${VAR} placeholder expansion
func TestLoadConfigEnvExpansion(t *testing.T) {
	os.Setenv("SIGNAL_PULSE_TEST_DB_PASSWORD", "expanded_secret_value")
	os.Setenv("SIGNAL_PULSE_TEST_FEED_KEY", "expanded_feed_key")
	defer os.Unsetenv("SIGNAL_PULSE_TEST_DB_PASSWORD")
	defer os.Unsetenv("SIGNAL_PULSE_TEST_FEED_KEY")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.Database.Password != "expanded_secret_value" {
		t.Errorf("expected expanded database password, got '%s'", cfg.Database.Password)
	}
	if cfg.Feed.APIKey != "expanded_feed_key" {
		t.Errorf("expected expanded feed api key, got '%s'", cfg.Feed.APIKey)
	}
}

// TestValidateValidConfig tests validation of a complete configuration
func TestValidateValidConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

// TestValidateRejectsBadPeriodGrouping tests the periodkind custom rule
func TestValidateRejectsBadPeriodGrouping(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Analytics.PeriodGrouping = "quarter"
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for unknown period grouping")
	}
	if !strings.Contains(err.Error(), "month, iso_week") {
		t.Errorf("expected periodkind message, got %v", err)
	}
}

// TestValidateHTTPFeedRequiresURL tests the cross-field feed rule
func TestValidateHTTPFeedRequiresURL(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Feed.Source = "http"
	cfg.Feed.URL = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for http feed without url")
	}
}

// TestValidateProductionRequiresSSL tests the production SSL rule
func TestValidateProductionRequiresSSL(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "production"
	cfg.Database.SSLMode = "disable"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for disabled SSL in production")
	}
}

// TestLoadWithDefaults tests defaults when the config file is absent
func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/nonexistent_config.yaml")
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.Analytics.RollingWindow != 30 {
		t.Errorf("expected default rolling window 30, got %d", cfg.Analytics.RollingWindow)
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Errorf("expected default cache ttl 300, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Feed.Source != "postgres" {
		t.Errorf("expected default feed source 'postgres', got '%s'", cfg.Feed.Source)
	}
}

// TestGetDatabaseDSN tests DSN formatting
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	dsn := cfg.GetDatabaseDSN()
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Errorf("expected postgres DSN, got '%s'", dsn)
	}
	if !strings.Contains(dsn, "signal_pulse") {
		t.Errorf("expected database name in DSN, got '%s'", dsn)
	}
}
