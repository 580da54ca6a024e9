package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"metalpedia-backend/pkg/container"
)

// HealthChecker performs startup and liveness checks against the worker's dependencies
type HealthChecker struct {
	c *container.Container
}

// startServices runs the startup checks and exposes the health endpoint
func startServices(c *container.Container, cfg *Config) error {
	log.Info().Msg("Metalpedia worker starting")

	checker := &HealthChecker{c: c}
	if err := checker.checkAll(context.Background()); err != nil {
		return err
	}

	go checker.serve(cfg.HealthAddr)
	return nil
}

func (h *HealthChecker) checkAll(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", h.c.Cache.Ping},
		{"Database Connection", h.c.DB.Ping},
	}

	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Startup check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Startup check passed")
	}

	return nil
}

func (h *HealthChecker) serve(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP","service":"metalpedia-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := h.checkAll(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"READY"}`))
	})

	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
