package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"bankdesk/internal/config"
	"bankdesk/internal/logging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, logging.Discard())

	assert.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	runner := NewMigrationRunner(db, logging.Discard())
	err = runner.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("database is locked"))
	mock.ExpectPing().WillReturnError(nil)

	originalRetries, originalInterval := maxRetries, retryInterval
	maxRetries, retryInterval = 2, 10*time.Millisecond
	defer func() {
		maxRetries, retryInterval = originalRetries, originalInterval
	}()

	err = NewMigrationRunner(db, logging.Discard()).WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	originalRetries, originalInterval := maxRetries, retryInterval
	maxRetries, retryInterval = 2, 10*time.Millisecond
	defer func() {
		maxRetries, retryInterval = originalRetries, originalInterval
	}()

	mock.ExpectPing().WillReturnError(errors.New("disk I/O error"))
	mock.ExpectPing().WillReturnError(errors.New("disk I/O error"))

	err = NewMigrationRunner(db, logging.Discard()).WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after 2 attempts")
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := SetupTestDB(t)

	for _, table := range []string{"accounts", "transactions"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	for _, column := range []string{"acc_no", "name", "pin", "balance"} {
		assert.True(t, db.Migrator().HasColumn("accounts", column), "missing accounts.%s", column)
	}
	for _, column := range []string{"id", "acc_no", "message", "date"} {
		assert.True(t, db.Migrator().HasColumn("transactions", column), "missing transactions.%s", column)
	}

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	version, dirty, err := NewMigrationRunner(sqlDB, logging.Discard()).GetMigrationStatus()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := SetupTestDB(t)
	accountNumber := CreateTestAccount(t, db, "Alice", "1234", 42)

	require.NoError(t, db.Migrate(logging.Discard()))

	var balance float64
	require.NoError(t, db.Raw("SELECT balance FROM accounts WHERE acc_no = ?", accountNumber).Scan(&balance).Error)
	assert.Equal(t, 42.0, balance)
}

func TestRunMigrations_AdoptsExistingDatabaseFile(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path:        filepath.Join(t.TempDir(), "bank.db"),
			BusyTimeout: time.Second,
		},
	}

	// a file laid out by an earlier build, without migration bookkeeping
	legacy, err := New(&cfg.Database, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, legacy.Exec(`CREATE TABLE accounts (acc_no INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, pin TEXT, balance REAL)`).Error)
	require.NoError(t, legacy.Exec(`CREATE TABLE transactions (id INTEGER PRIMARY KEY AUTOINCREMENT, acc_no INTEGER, message TEXT, date TEXT)`).Error)
	require.NoError(t, legacy.Exec(`INSERT INTO accounts (name, pin, balance) VALUES ('Old', '0000', 10.5)`).Error)
	require.NoError(t, legacy.Close())

	cfg.Database.AutoMigrate = true
	db, err := Initialize(cfg, logging.Discard())
	require.NoError(t, err)
	defer db.Close()

	var name string
	require.NoError(t, db.Raw("SELECT name FROM accounts WHERE acc_no = 1").Scan(&name).Error)
	assert.Equal(t, "Old", name)
	assert.NoError(t, db.HealthCheck(context.Background()))
}
