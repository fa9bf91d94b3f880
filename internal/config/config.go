package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const ServiceName = "gamereviews"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config is read from GAMEREVIEWS_* environment variables. Command line
// flags bound in internal/cli take precedence over it.
type Config struct {
	Addr            string
	DiagAddr        string
	DBDriver        string
	DatabaseURL     string
	Debug           bool
	SlowQuery       time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:            getEnv("ADDR", ":3333"),
		DiagAddr:        getEnv("DIAG_ADDR", ":9999"),
		DBDriver:        getEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/nc_games?sslmode=disable"),
		Debug:           getEnvBool("DEBUG", false),
		SlowQuery:       getEnvDuration("SLOW_QUERY", 200*time.Millisecond),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}

	if c.DatabaseURL == "" {
		return errors.New("database url is required")
	}

	if c.Addr == "" {
		return errors.New("listen address is required")
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	return nil
}

// EnvKey returns the environment variable name for a config key.
func EnvKey(key string) string {
	return strings.ToUpper(ServiceName) + "_" + key
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(EnvKey(key)); ok {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(EnvKey(key))
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(EnvKey(key))
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}

	return d
}
