package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// It is populated from environment variables.
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Jobs      JobConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	AllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string // metalpedia-media
	UseSSL    bool
	// PublicURL overrides the scheme://host part of returned object URLs (CDN, reverse proxy)
	PublicURL string
}

type AuthConfig struct {
	Mode      string // address | jwt
	JWTSecret string
	TokenTTL  time.Duration
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

type JobConfig struct {
	OrphanSweepCron   string
	OrphanGracePeriod time.Duration
	CleanupMaxRetry   int
}

type CacheConfig struct {
	StatsTTL time.Duration
}

const defaultJWTSecret = "change-me-in-production"

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Metalpedia API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "metalpedia-media"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Auth: AuthConfig{
			Mode:      getEnv("AUTH_MODE", "address"),
			JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
			TokenTTL:  getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
			Burst:     getEnvInt("RATE_LIMIT_BURST", 10),
		},
		Jobs: JobConfig{
			OrphanSweepCron:   getEnv("ORPHAN_SWEEP_CRON", "0 4 * * *"),
			OrphanGracePeriod: getEnvDuration("ORPHAN_GRACE_PERIOD", 24*time.Hour),
			CleanupMaxRetry:   getEnvInt("MEDIA_CLEANUP_MAX_RETRY", 5),
		},
		Cache: CacheConfig{
			StatsTTL: getEnvDuration("STATS_CACHE_TTL", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that have no safe default
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case "address", "jwt":
	default:
		return fmt.Errorf("AUTH_MODE must be address or jwt, got %q", c.Auth.Mode)
	}

	if c.Auth.Mode == "jwt" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set when AUTH_MODE=jwt")
	}

	if c.App.Environment == "production" {
		if c.Auth.Mode == "jwt" && c.Auth.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.MinIO.AccessKey == "minioadmin" {
			return fmt.Errorf("MINIO_ACCESS_KEY must be set in production")
		}
	}

	if c.Jobs.OrphanGracePeriod < time.Hour {
		return fmt.Errorf("ORPHAN_GRACE_PERIOD must be at least 1h")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
