package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Matching MatchingConfig `yaml:"matching"`
	Digest   DigestConfig   `yaml:"digest"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type MatchingConfig struct {
	Weights         MatchWeights `yaml:"weights"`
	PriceTolerance  float64      `yaml:"price_tolerance"`
	TimingGraceDays int          `yaml:"timing_grace_days"`
	CityWeightShare float64      `yaml:"city_weight_share"`
	Workers         int          `yaml:"workers"`
	CandidatePool   int          `yaml:"candidate_pool"`
}

type MatchWeights struct {
	Price     float64 `yaml:"price"`
	Location  float64 `yaml:"location"`
	Capacity  float64 `yaml:"capacity"`
	Timing    float64 `yaml:"timing"`
	Amenities float64 `yaml:"amenities"`
	Lifestyle float64 `yaml:"lifestyle"`
}

type DigestConfig struct {
	Enabled        bool    `yaml:"enabled"`
	IntervalMs     int     `yaml:"interval_ms"`
	MinScore       float64 `yaml:"min_score"`
	MaxSuggestions int     `yaml:"max_suggestions"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) DigestInterval() time.Duration {
	return time.Duration(c.Digest.IntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Matching: MatchingConfig{
			Weights: MatchWeights{
				Price:     25,
				Location:  20,
				Capacity:  15,
				Timing:    15,
				Amenities: 15,
				Lifestyle: 10,
			},
			PriceTolerance:  0.10,
			TimingGraceDays: 14,
			CityWeightShare: 0.60,
			Workers:         4,
			CandidatePool:   500,
		},
		Digest: DigestConfig{
			Enabled:        false,
			IntervalMs:     60000,
			MinScore:       75,
			MaxSuggestions: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MATCHD_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MATCHD_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MATCHD_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MATCHD_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("MATCHD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.Workers = n
		}
	}
	if v := os.Getenv("MATCHD_DIGEST_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Digest.Enabled = b
		}
	}
	if v := os.Getenv("MATCHD_DIGEST_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Digest.IntervalMs = n
		}
	}
	if v := os.Getenv("MATCHD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
