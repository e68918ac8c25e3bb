package models

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidBalance = errors.New("balance must be a finite, non-negative amount")
	ErrNameRequired   = errors.New("name is required")
)

// Account represents a bank account
type Account struct {
	AccountNumber int64   `gorm:"column:acc_no;primaryKey;autoIncrement" json:"account_number"`
	Name          string  `gorm:"column:name" json:"name"`
	PIN           string  `gorm:"column:pin" json:"-"`
	Balance       float64 `gorm:"column:balance" json:"balance"`
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrNameRequired
	}

	if a.Balance < 0 || math.IsNaN(a.Balance) || math.IsInf(a.Balance, 0) {
		return ErrInvalidBalance
	}

	return nil
}

// CanWithdraw checks if the amount can be withdrawn
func (a *Account) CanWithdraw(amount float64) bool {
	return amount > 0 && amount <= a.Balance
}

// CanCredit checks that crediting amount keeps the balance finite
func (a *Account) CanCredit(amount float64) bool {
	return amount >= 0 && !math.IsInf(a.Balance+amount, 0)
}
