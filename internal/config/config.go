package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseURL string // TRACKDASH_DATABASE_URL (required)
	HTTPAddr    string // TRACKDASH_HTTP_ADDR (default ":8080")
	NATSURL     string // TRACKDASH_NATS_URL (optional, empty = no events)
	AuthToken   string // TRACKDASH_AUTH_TOKEN (optional, empty = auth disabled)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL: os.Getenv("TRACKDASH_DATABASE_URL"),
		HTTPAddr:    envOrDefault("TRACKDASH_HTTP_ADDR", ":8080"),
		NATSURL:     os.Getenv("TRACKDASH_NATS_URL"),
		AuthToken:   os.Getenv("TRACKDASH_AUTH_TOKEN"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("TRACKDASH_DATABASE_URL is required")
	}
	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
