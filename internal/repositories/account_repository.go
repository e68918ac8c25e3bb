package repositories

import (
	"context"
	"errors"
	"fmt"

	"bankdesk/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db   *gorm.DB
	pins PINCodec
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB, pins PINCodec) AccountRepositoryInterface {
	if pins == nil {
		pins = PlainPINCodec{}
	}
	return &accountRepository{
		db:   db,
		pins: pins,
	}
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	encoded, err := r.pins.Encode(account.PIN)
	if err != nil {
		return err
	}

	row := *account
	row.PIN = encoded
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.AccountNumber = row.AccountNumber
	return nil
}

// FindByCredentials retrieves an account by number and PIN
func (r *accountRepository) FindByCredentials(ctx context.Context, accountNumber int64, pin string) (*models.Account, error) {
	account, err := r.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if !r.pins.Matches(account.PIN, pin) {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

// GetByAccountNumber retrieves an account by account number
func (r *accountRepository) GetByAccountNumber(ctx context.Context, accountNumber int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("acc_no = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetBalance retrieves the current balance of an account
func (r *accountRepository) GetBalance(ctx context.Context, accountNumber int64) (float64, error) {
	account, err := r.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// AdjustBalance adds delta to the stored balance
func (r *accountRepository) AdjustBalance(ctx context.Context, accountNumber int64, delta float64) error {
	return adjustBalance(r.db.WithContext(ctx), accountNumber, delta)
}

// ApplyBalanceChange updates the balance and records the log entry in a database transaction
func (r *accountRepository) ApplyBalanceChange(ctx context.Context, accountNumber int64, delta float64, entry *models.Transaction) (float64, error) {
	var account models.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := adjustBalance(tx, accountNumber, delta); err != nil {
			return err
		}

		entry.AccountNumber = accountNumber
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		if err := tx.Select("balance").Where("acc_no = ?", accountNumber).First(&account).Error; err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func adjustBalance(db *gorm.DB, accountNumber int64, delta float64) error {
	result := db.Model(&models.Account{}).
		Where("acc_no = ?", accountNumber).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))

	if result.Error != nil {
		return fmt.Errorf("failed to update account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
