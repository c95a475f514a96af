package config

import (
	"math"
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all MATCHD_ env vars to test pure defaults
	envVars := []string{
		"MATCHD_PORT", "MATCHD_METRICS_PORT", "MATCHD_DATABASE_URL",
		"MATCHD_EVENTS_URL", "MATCHD_WORKERS", "MATCHD_DIGEST_ENABLED",
		"MATCHD_DIGEST_INTERVAL_MS", "MATCHD_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	// Matching defaults
	mw := cfg.Matching.Weights
	expectedWeights := map[string]float64{
		"price": 25, "location": 20, "capacity": 15,
		"timing": 15, "amenities": 15, "lifestyle": 10,
	}
	actualWeights := map[string]float64{
		"price": mw.Price, "location": mw.Location, "capacity": mw.Capacity,
		"timing": mw.Timing, "amenities": mw.Amenities, "lifestyle": mw.Lifestyle,
	}
	var weightSum float64
	for name, expected := range expectedWeights {
		actual := actualWeights[name]
		if math.Abs(actual-expected) > 0.001 {
			t.Errorf("matching weight %s: expected %f, got %f", name, expected, actual)
		}
		weightSum += actual
	}
	if math.Abs(weightSum-100) > 0.01 {
		t.Errorf("matching weights sum to %f, expected 100", weightSum)
	}
	if math.Abs(cfg.Matching.PriceTolerance-0.10) > 0.001 {
		t.Errorf("expected price tolerance 0.10, got %f", cfg.Matching.PriceTolerance)
	}
	if cfg.Matching.TimingGraceDays != 14 {
		t.Errorf("expected grace 14, got %d", cfg.Matching.TimingGraceDays)
	}
	if math.Abs(cfg.Matching.CityWeightShare-0.60) > 0.001 {
		t.Errorf("expected city share 0.60, got %f", cfg.Matching.CityWeightShare)
	}
	if cfg.Matching.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Matching.Workers)
	}
	if cfg.Matching.CandidatePool != 500 {
		t.Errorf("expected candidate pool 500, got %d", cfg.Matching.CandidatePool)
	}

	// Digest defaults
	if cfg.Digest.Enabled {
		t.Error("expected digest disabled by default")
	}
	if cfg.Digest.MinScore != 75 {
		t.Errorf("expected min score 75, got %f", cfg.Digest.MinScore)
	}
	if cfg.Digest.MaxSuggestions != 5 {
		t.Errorf("expected max suggestions 5, got %d", cfg.Digest.MaxSuggestions)
	}
	if cfg.DigestInterval() != time.Minute {
		t.Errorf("expected DigestInterval 1m, got %v", cfg.DigestInterval())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MATCHD_PORT", "9000")
	t.Setenv("MATCHD_METRICS_PORT", "9001")
	t.Setenv("MATCHD_DATABASE_URL", "postgres://localhost/havenmatch_test")
	t.Setenv("MATCHD_EVENTS_URL", "nats://nats:4222")
	t.Setenv("MATCHD_WORKERS", "8")
	t.Setenv("MATCHD_DIGEST_ENABLED", "true")
	t.Setenv("MATCHD_DIGEST_INTERVAL_MS", "5000")
	t.Setenv("MATCHD_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.URL != "postgres://localhost/havenmatch_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("expected events URL, got '%s'", cfg.Events.URL)
	}
	if cfg.Matching.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Matching.Workers)
	}
	if !cfg.Digest.Enabled {
		t.Error("expected digest enabled")
	}
	if cfg.DigestInterval() != 5*time.Second {
		t.Errorf("expected DigestInterval 5s, got %v", cfg.DigestInterval())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/matchd.yaml"
	data := []byte(`
server:
  port: 8800
matching:
  weights:
    price: 40
    location: 20
    capacity: 10
    timing: 10
    amenities: 10
    lifestyle: 10
  timing_grace_days: 7
digest:
  enabled: true
  min_score: 80
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Matching.Weights.Price != 40 {
		t.Errorf("expected price weight 40, got %f", cfg.Matching.Weights.Price)
	}
	if cfg.Matching.TimingGraceDays != 7 {
		t.Errorf("expected grace 7, got %d", cfg.Matching.TimingGraceDays)
	}
	if !cfg.Digest.Enabled || cfg.Digest.MinScore != 80 {
		t.Errorf("expected digest enabled at 80, got %v %f", cfg.Digest.Enabled, cfg.Digest.MinScore)
	}
	// File values merge over defaults
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}
