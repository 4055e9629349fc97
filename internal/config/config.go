package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Open-Meteo weather provider configuration.
	WeatherBaseURL  string
	WeatherTimeout  time.Duration
	WeatherTimezone string

	// Price dataset configuration.
	PriceDataPath string
	DefaultTopN   int

	// Advisory event publishing configuration.
	KafkaBrokers       []string
	KafkaAdvisoryTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parsePositiveDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	topN, err := parseTopN()
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WeatherBaseURL:  envOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		WeatherTimeout:  weatherTimeout,
		WeatherTimezone: envOrDefault("WEATHER_TIMEZONE", "Asia/Kolkata"),

		PriceDataPath: envOrDefault("PRICE_DATA_PATH", "data/mandi_prices.csv"),
		DefaultTopN:   topN,

		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAdvisoryTopic: envOrDefault("KAFKA_ADVISORY_TOPIC", "advisory-events"),
		KafkaEnabled:       kafkaEnabled,
	}

	if _, err := time.LoadLocation(cfg.WeatherTimezone); err != nil {
		return nil, fmt.Errorf("invalid WEATHER_TIMEZONE %q: %w", cfg.WeatherTimezone, err)
	}
	if cfg.PriceDataPath == "" {
		return nil, errors.New("PRICE_DATA_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaAdvisoryTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_ADVISORY_TOPIC is not set")
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.WeatherTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseTopN() (int, error) {
	s := os.Getenv("DEFAULT_TOP_N")
	if s == "" {
		return 3, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid DEFAULT_TOP_N")
	}
	return n, nil
}
