// Package config loads the API's runtime configuration from environment
// variables. Every knob has a CAFETERIA_ prefix; only the JWT secret is
// mandatory.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "CAFETERIA_"

// Config is the fully resolved runtime configuration.
type Config struct {
	Addr        string
	PostgresDSN string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	RateBurst  int
	RatePerSec int
}

// Load reads configuration from the environment, applying defaults for
// everything except CAFETERIA_JWT_SECRET.
func Load() (Config, error) {
	cfg := Config{
		Addr:        envOr("ADDR", ":8080"),
		PostgresDSN: os.Getenv(envPrefix + "PG_DSN"),
		JWTSecret:   os.Getenv(envPrefix + "JWT_SECRET"),
		JWTIssuer:   envOr("JWT_ISSUER", "cafeteria-api"),
		JWTAudience: envOr("JWT_AUDIENCE", "cafeteria-clients"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: CAFETERIA_JWT_SECRET is required")
	}

	expiryMinutes, err := envInt("JWT_EXPIRY_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}
	if expiryMinutes <= 0 {
		return Config{}, errors.New("config: CAFETERIA_JWT_EXPIRY_MINUTES must be positive")
	}
	cfg.JWTExpiry = time.Duration(expiryMinutes) * time.Minute

	if cfg.RateBurst, err = envInt("RATE_BURST", 20); err != nil {
		return Config{}, err
	}
	if cfg.RatePerSec, err = envInt("RATE_PER_SEC", 10); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst <= 0 || cfg.RatePerSec <= 0 {
		return Config{}, errors.New("config: rate limit settings must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(envPrefix + key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
	}
	return v, nil
}
