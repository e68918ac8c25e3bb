package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoad_Defaults() {
	for _, key := range []string{
		"BANK_ENV", "BANK_DB_PATH", "BANK_DB_BUSY_TIMEOUT", "BANK_DB_AUTO_MIGRATE",
		"BANK_LOG_LEVEL", "BANK_LOG_FORMAT", "BANK_LOG_FILE",
		"BANK_PIN_STORAGE", "BANK_BCRYPT_COST", "BANK_METRICS_FILE", "BANK_NO_COLOR",
	} {
		s.T().Setenv(key, "")
	}

	cfg := Load()

	s.Equal("development", cfg.App.Environment)
	s.False(cfg.App.NoColor)
	s.Equal("bank.db", cfg.Database.Path)
	s.Equal(5*time.Second, cfg.Database.BusyTimeout)
	s.True(cfg.Database.AutoMigrate)
	s.Equal("info", cfg.Logging.Level)
	s.Equal(LogFormatText, cfg.Logging.Format)
	s.Equal("bank.log", cfg.Logging.File)
	s.Equal(PINStoragePlain, cfg.Security.PINStorage)
	s.Equal(12, cfg.Security.BCryptCost)
	s.Empty(cfg.Metrics.TextfilePath)
	s.NoError(cfg.Validate())
	s.Equal("development", cfg.App.Environment)
}

func (s *ConfigTestSuite) TestLoad_FromEnvironment() {
	s.T().Setenv("BANK_ENV", "production")
	s.T().Setenv("BANK_DB_PATH", "/tmp/other.db")
	s.T().Setenv("BANK_DB_BUSY_TIMEOUT", "250ms")
	s.T().Setenv("BANK_LOG_FORMAT", "JSON")
	s.T().Setenv("BANK_PIN_STORAGE", "bcrypt")
	s.T().Setenv("BANK_BCRYPT_COST", "4")
	s.T().Setenv("BANK_NO_COLOR", "true")

	cfg := Load()

	s.Equal("production", cfg.App.Environment)
	s.Equal("/tmp/other.db", cfg.Database.Path)
	s.Equal(250*time.Millisecond, cfg.Database.BusyTimeout)
	s.Equal(LogFormatJSON, cfg.Logging.Format)
	s.Equal(PINStorageBcrypt, cfg.Security.PINStorage)
	s.Equal(4, cfg.Security.BCryptCost)
	s.True(cfg.App.NoColor)
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestLoad_InvalidNumbersFallBack() {
	s.T().Setenv("BANK_BCRYPT_COST", "twelve")
	s.T().Setenv("BANK_DB_BUSY_TIMEOUT", "soon")
	s.T().Setenv("BANK_DB_AUTO_MIGRATE", "maybe")

	cfg := Load()

	s.Equal(12, cfg.Security.BCryptCost)
	s.Equal(5*time.Second, cfg.Database.BusyTimeout)
	s.True(cfg.Database.AutoMigrate)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Path: "bank.db"},
			Logging:  LoggingConfig{Level: "info", Format: LogFormatText},
			Security: SecurityConfig{PINStorage: PINStoragePlain},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "unknown pin storage", mutate: func(c *Config) { c.Security.PINStorage = "rot13" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{Path: "bank.db", BusyTimeout: 2 * time.Second}
	assert.Equal(t, "bank.db?_busy_timeout=2000", cfg.DSN())
}

func TestSlogLevel(t *testing.T) {
	cfg := LoggingConfig{Level: "debug"}
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
