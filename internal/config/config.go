package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PINStoragePlain  = "plain"
	PINStorageBcrypt = "bcrypt"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Security SecurityConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Environment string
	NoColor     bool
}

type DatabaseConfig struct {
	Path        string
	BusyTimeout time.Duration
	AutoMigrate bool
}

type LoggingConfig struct {
	Level  string
	Format string
	// File is the destination of the structured log. "-" writes to stderr.
	File string
}

type SecurityConfig struct {
	PINStorage string
	BCryptCost int
}

type MetricsConfig struct {
	// TextfilePath receives a Prometheus text exposition on shutdown when set.
	TextfilePath string
}

// Load reads an optional .env file and the process environment. Every key has a
// default, so an empty environment reproduces the stock bank.db setup.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Environment: getEnv("BANK_ENV", "development"),
			NoColor:     getBoolEnv("BANK_NO_COLOR", false),
		},
		Database: DatabaseConfig{
			Path:        getEnv("BANK_DB_PATH", "bank.db"),
			BusyTimeout: getDurationEnv("BANK_DB_BUSY_TIMEOUT", 5*time.Second),
			AutoMigrate: getBoolEnv("BANK_DB_AUTO_MIGRATE", true),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("BANK_LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("BANK_LOG_FORMAT", LogFormatText)),
			File:   getEnv("BANK_LOG_FILE", "bank.log"),
		},
		Security: SecurityConfig{
			PINStorage: strings.ToLower(getEnv("BANK_PIN_STORAGE", PINStoragePlain)),
			BCryptCost: getIntEnv("BANK_BCRYPT_COST", 12),
		},
		Metrics: MetricsConfig{
			TextfilePath: getEnv("BANK_METRICS_FILE", ""),
		},
	}
}

// Validate rejects enum values the rest of the program cannot act on.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	switch c.Security.PINStorage {
	case PINStoragePlain, PINStorageBcrypt:
	default:
		return fmt.Errorf("unsupported PIN storage %q", c.Security.PINStorage)
	}

	switch c.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported log format %q", c.Logging.Format)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// DSN returns the sqlite connection string for the configured database file.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s?_busy_timeout=%d", c.Path, c.BusyTimeout.Milliseconds())
}

// SlogLevel parses the configured level name.
func (c *LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
