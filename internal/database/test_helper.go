package database

import (
	"fmt"
	"testing"
	"time"

	"bankdesk/internal/config"
	"bankdesk/internal/logging"
)

// SetupTestDB returns a migrated in-memory database that is closed when the test ends.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:        ":memory:",
		BusyTimeout: time.Second,
		AutoMigrate: true,
	}

	db, err := New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.Migrate(logging.Discard()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CreateTestAccount inserts an account row directly, bypassing the service layer.
func CreateTestAccount(t *testing.T, db *DB, name, pin string, balance float64) int64 {
	t.Helper()

	result := db.Exec("INSERT INTO accounts (name, pin, balance) VALUES (?, ?, ?)", name, pin, balance)
	if result.Error != nil {
		t.Fatalf("failed to create test account: %v", result.Error)
	}

	var accountNumber int64
	if err := db.Raw("SELECT MAX(acc_no) FROM accounts").Scan(&accountNumber).Error; err != nil {
		t.Fatalf("failed to read test account number: %v", err)
	}

	return accountNumber
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transactions",
		"accounts",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
