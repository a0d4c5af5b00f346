// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Port          string
	DatabaseURL   string
	RunMigrations bool

	GeminiAPIKey string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string

	SessionSecret string
	SessionTTL    time.Duration

	FreeScanLimit int64

	AllowedOrigins []string
}

// Load reads configuration from the environment.
// A .env file is loaded first if present, real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RunMigrations:       getEnv("RUN_MIGRATIONS", "true") == "true",
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePriceID:       os.Getenv("STRIPE_PRICE_ID"),
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		AllowedOrigins:      splitAndTrim(os.Getenv("ALLOWED_ORIGINS")),
	}

	ttlHours, err := getEnvInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	limit, err := getEnvInt("FREE_SCAN_LIMIT", 3)
	if err != nil {
		return nil, err
	}
	cfg.FreeScanLimit = limit

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	// 署名検証なしでWebhookを受け付けない
	if cfg.StripeSecretKey != "" && cfg.StripeWebhookSecret == "" {
		return nil, errors.New("STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
