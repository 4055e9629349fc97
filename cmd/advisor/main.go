package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agrichain/advisory-service/internal/adapter/httpapi"
	kafkaadapter "github.com/agrichain/advisory-service/internal/adapter/kafka"
	"github.com/agrichain/advisory-service/internal/adapter/openmeteo"
	"github.com/agrichain/advisory-service/internal/adapter/pricestore"
	"github.com/agrichain/advisory-service/internal/advisor"
	"github.com/agrichain/advisory-service/internal/config"
	"github.com/agrichain/advisory-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := pricestore.New(cfg.PriceDataPath, logger, metrics)
	weather := openmeteo.NewClient(cfg.WeatherBaseURL, cfg.WeatherTimezone, cfg.WeatherTimeout, logger, metrics)

	// Advisory event publishing is feature-flagged via KAFKA_ENABLED.
	var publisher advisor.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		publisher = writer
		logger.Info("advisory event publishing enabled", "topic", cfg.KafkaAdvisoryTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("advisory event publishing disabled")
	}

	svc := advisor.New(store, weather, publisher, cfg.Location(), cfg.DefaultTopN, logger, metrics)

	// Warm the price dataset so the first request does not pay for generation.
	if _, err := store.Series(); err != nil {
		logger.Error("failed to load price dataset", "path", cfg.PriceDataPath, "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
