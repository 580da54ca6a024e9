package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Config holds the worker-only settings. Shared settings come from internal/config.
type Config struct {
	Concurrency int
	HealthAddr  string
}

func loadConfig() *Config {
	cfg := &Config{
		Concurrency: 10,
		HealthAddr:  ":9999",
	}

	if v, err := strconv.Atoi(os.Getenv("WORKER_CONCURRENCY")); err == nil && v > 0 {
		cfg.Concurrency = v
	}
	if v := os.Getenv("WORKER_HEALTH_ADDR"); v != "" {
		cfg.HealthAddr = v
	}

	log.Info().
		Int("concurrency", cfg.Concurrency).
		Str("health_addr", cfg.HealthAddr).
		Msg("[Config] Worker settings loaded")

	return cfg
}
