package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends the importer can write to.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
)

// Config holds application configuration
type Config struct {
	SupabaseURL  string
	SupabaseKey  string
	CSVPath      string
	StoreBackend string // supabase (default) or sqlite for rehearsal runs
	DatabasePath string
	LogLevel     string
	HTTPTimeout  time.Duration
	DevMode      bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:  getEnv("SUPABASE_URL", ""),
		SupabaseKey:  getEnv("SUPABASE_KEY", ""),
		CSVPath:      getEnv("CSV_PATH", "./trade-history.csv"),
		StoreBackend: getEnv("STORE_BACKEND", BackendSupabase),
		DatabasePath: getEnv("DATABASE_PATH", "./data/portfolio.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:  getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		DevMode:      getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		return fmt.Errorf("CSV_PATH is required")
	}

	switch c.StoreBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required when STORE_BACKEND is %q", BackendSupabase)
		}
		if c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_KEY is required when STORE_BACKEND is %q", BackendSupabase)
		}
	case BackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required when STORE_BACKEND is %q", BackendSQLite)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (expected %q or %q)", c.StoreBackend, BackendSupabase, BackendSQLite)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
