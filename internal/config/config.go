// Package config loads server configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
	StorageTypeRedis    = "redis"
)

// Config holds all environment-driven settings
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	// Postgres settings; DatabaseURL wins when set, otherwise the URL is
	// assembled from the DB_* parts
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBUsername  string `env:"DB_USERNAME"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`

	RedisURL string `env:"REDIS_URL"`
}

// Load parses and validates configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected storage backend has the settings it
// needs. A failure here is fatal at startup, before any connection is
// accepted.
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory:
		return nil
	case StorageTypePostgres:
		if c.DatabaseURL != "" {
			return nil
		}
		if c.DBUsername == "" || c.DBPassword == "" || c.DBName == "" {
			return errors.New("missing required environment variables: DB_USERNAME, DB_PASSWORD, DB_NAME")
		}
		return nil
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage type %q", c.StorageType)
	}
}

// PostgresURL returns the connection URL for the Postgres backend
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUsername, c.DBPassword),
		Host:     c.DBHost + ":" + strconv.Itoa(c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
