package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haven-living/matchd/internal/api"
	"github.com/haven-living/matchd/internal/config"
	"github.com/haven-living/matchd/internal/digest"
	"github.com/haven-living/matchd/internal/events"
	"github.com/haven-living/matchd/internal/match"
	"github.com/haven-living/matchd/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if lvl := logLevel(cfg.Logging.Level); lvl != slog.LevelInfo {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
		slog.SetDefault(logger)
	}

	weights := match.WeightSet{
		Price:     cfg.Matching.Weights.Price,
		Location:  cfg.Matching.Weights.Location,
		Capacity:  cfg.Matching.Weights.Capacity,
		Timing:    cfg.Matching.Weights.Timing,
		Amenities: cfg.Matching.Weights.Amenities,
		Lifestyle: cfg.Matching.Weights.Lifestyle,
	}
	if err := weights.Validate(); err != nil {
		logger.Error("invalid weight configuration", "error", err)
		os.Exit(1)
	}
	params := match.Params{
		PriceTolerance:  cfg.Matching.PriceTolerance,
		TimingGraceDays: cfg.Matching.TimingGraceDays,
		CityShare:       cfg.Matching.CityWeightShare,
		Workers:         cfg.Matching.Workers,
	}
	if err := params.Validate(); err != nil {
		logger.Error("invalid matching parameters", "error", err)
		os.Exit(1)
	}
	scorer := match.NewScorer(weights, params, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to events, running without publishing", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to events")
		}
	}

	// Digest worker
	if cfg.Digest.Enabled {
		d := digest.New(db, eventsClient, scorer, cfg, logger)
		d.Start(ctx)
		defer d.Stop()
		logger.Info("digest worker started", "interval", cfg.DigestInterval())
	}

	// API server
	router := api.NewRouter(db, eventsClient, scorer, cfg.Matching.CandidatePool, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func logLevel(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
