// Package config loads and validates process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	longTokenTTL  = 30 * 24 * time.Hour // development
	shortTokenTTL = 6 * time.Hour
)

// Postgres holds connection parameters for the relational store.
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// DSN returns the pgx connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// Config is the full process configuration, built once at startup and passed
// by reference into the components that need it.
type Config struct {
	Port          string
	Env           string
	SecretKey     []byte
	TokenTTL      time.Duration
	Postgres      Postgres
	RedisAddr     string
	RedisPassword string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// IsDevelopment reports whether the process runs in a development-like
// environment (selects the long token TTL and verbose route errors).
func (c *Config) IsDevelopment() bool {
	return strings.Contains(c.Env, "dev")
}

// Load builds a Config from environment variables. Missing required values
// (signing secret, Postgres credentials) are a startup error, not a
// per-request failure.
func Load() (*Config, error) {
	if err := validateEnv([]string{"SECRET_KEY", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"}); err != nil {
		return nil, err
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Port:      getEnv("PORT", "3000"),
		Env:       env,
		SecretKey: []byte(os.Getenv("SECRET_KEY")),
		Postgres: Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: os.Getenv("POSTGRES_DB"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}

	// Long-lived tokens in development, short-lived everywhere else.
	if cfg.IsDevelopment() {
		cfg.TokenTTL = longTokenTTL
	} else {
		cfg.TokenTTL = shortTokenTTL
	}

	return cfg, nil
}

// validateEnv validates that all required environment variables are set
func validateEnv(requiredVars []string) error {
	var missing []string

	for _, varName := range requiredVars {
		if os.Getenv(varName) == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
