package services

import (
	"context"
	"time"

	"bankdesk/internal/dto"
	"bankdesk/internal/models"
)

// AccountServiceInterface defines account-related business operations.
// Dashboard operations take the account number of the caller's session.
type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.CreateAccountResponse, error)
	Authenticate(ctx context.Context, accountNumber int64, pin string) (*models.Account, error)
	Deposit(ctx context.Context, accountNumber int64, amount float64) (*dto.OperationResult, error)
	Withdraw(ctx context.Context, accountNumber int64, amount float64) (*dto.OperationResult, error)
	CheckBalance(ctx context.Context, accountNumber int64) (*dto.BalanceResponse, error)
	TransactionHistory(ctx context.Context, accountNumber int64) (*dto.StatementResponse, error)
	MiniStatement(ctx context.Context, accountNumber int64) (*dto.StatementResponse, error)
	AddInterest(ctx context.Context, accountNumber int64) (*dto.OperationResult, error)
	Loan(ctx context.Context, accountNumber int64, amount float64) (*dto.OperationResult, error)
}

// MetricsRecorderInterface records operation metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
