package repositories

import (
	"context"
	"fmt"
	"time"

	"bankdesk/internal/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Append adds an entry to the transaction log
func (r *transactionRepository) Append(ctx context.Context, accountNumber int64, message string, at time.Time) error {
	entry := models.NewTransaction(accountNumber, message, at)
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListMessages retrieves log messages for an account
func (r *transactionRepository) ListMessages(ctx context.Context, accountNumber int64, limit int) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("acc_no = ?", accountNumber)

	if limit > 0 {
		query = query.Order("id DESC").Limit(limit)
	} else {
		query = query.Order("id ASC")
	}

	messages := []string{}
	if err := query.Pluck("message", &messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return messages, nil
}
