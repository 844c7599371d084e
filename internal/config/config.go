package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", key, raw)
	}
	return v, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration", key, raw)
	}
	return v, nil
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Server is the configuration of cmd/server.
type Server struct {
	Port         int
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	SeedPath     string
	RedisURL     string
	GridCacheTTL time.Duration
	DefaultGrid  string
}

// LoadServer reads the server configuration from the environment and validates it.
func LoadServer() (Server, error) {
	port, err := GetInt("PORT", 5000)
	if err != nil {
		return Server{}, err
	}
	ttl, err := GetDuration("GRID_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return Server{}, err
	}

	cfg := Server{
		Port:         port,
		DBDriver:     strings.ToLower(Get("DB_DRIVER", DriverSQLite)),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/grids.json"),
		RedisURL:     Get("REDIS_URL", ""),
		GridCacheTTL: ttl,
		DefaultGrid:  strings.ToLower(Get("DEFAULT_GRID", "bng")),
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("config: DB_PATH is required for sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: DB_DRIVER %q must be sqlite, postgres or memory", c.DBDriver)
	}

	if c.GridCacheTTL < 0 {
		return fmt.Errorf("config: GRID_CACHE_TTL %s must not be negative", c.GridCacheTTL)
	}
	if c.DefaultGrid == "" {
		return errors.New("config: DEFAULT_GRID must not be empty")
	}
	return nil
}

// Addr is the listen address for the configured port.
func (c Server) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
