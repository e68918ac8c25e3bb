package repositories

import (
	"context"
	"time"

	"bankdesk/internal/models"
)

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	// Create stores a new account, encoding its PIN, and assigns AccountNumber.
	Create(ctx context.Context, account *models.Account) error
	// FindByCredentials returns ErrAccountNotFound for an unknown number and a wrong PIN alike.
	FindByCredentials(ctx context.Context, accountNumber int64, pin string) (*models.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber int64) (*models.Account, error)
	GetBalance(ctx context.Context, accountNumber int64) (float64, error)
	// AdjustBalance applies balance += delta. Callers check that debits stay covered.
	AdjustBalance(ctx context.Context, accountNumber int64, delta float64) error
	// ApplyBalanceChange adjusts the balance and appends entry in one database
	// transaction and returns the resulting balance.
	ApplyBalanceChange(ctx context.Context, accountNumber int64, delta float64, entry *models.Transaction) (float64, error)
}

// TransactionRepositoryInterface defines the contract for transaction log operations
type TransactionRepositoryInterface interface {
	Append(ctx context.Context, accountNumber int64, message string, at time.Time) error
	// ListMessages returns messages oldest first when limit <= 0, otherwise the
	// limit most recent messages newest first.
	ListMessages(ctx context.Context, accountNumber int64, limit int) ([]string, error)
}

// PINCodec is the single place that knows how PINs are stored.
type PINCodec interface {
	Encode(pin string) (string, error)
	Matches(stored, pin string) bool
}
