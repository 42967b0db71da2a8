package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8000"`
	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`
	CORSOrigins string `env:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"20"`

	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL" default:"10m"`

	R2Endpoint      string `env:"R2_ENDPOINT"`
	R2AccessKey     string `env:"R2_ACCESS_KEY"`
	R2SecretKey     string `env:"R2_SECRET_KEY"`
	R2Bucket        string `env:"R2_BUCKET_NAME"`
	R2PublicBaseURL string `env:"R2_PUBLIC_BASE_URL"`
}

// Load reads .env and the process environment for the API server.
func Load() (*Config, error) {
	return load(true)
}

// LoadTool is Load for offline commands that never issue tokens.
func LoadTool() (*Config, error) {
	return load(false)
}

func load(requireAuth bool) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg, requireAuth); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config, requireAuth bool) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if requireAuth {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is required")
		}
		if len(cfg.JWTSecret) < 16 {
			return errors.New("JWT_SECRET must be at least 16 characters")
		}
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	// storage is all-or-nothing
	r2 := []string{cfg.R2Endpoint, cfg.R2AccessKey, cfg.R2SecretKey, cfg.R2Bucket, cfg.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return errors.New("R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL must be set together")
	}

	return nil
}

// StorageEnabled reports whether voice review audio can be uploaded.
func (c *Config) StorageEnabled() bool {
	return c.R2Bucket != ""
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits CORS_ORIGINS, dropping blanks and trailing slashes.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
