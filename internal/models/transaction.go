package models

import (
	"time"
)

// Transaction is one append-only entry of the transaction log.
type Transaction struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountNumber int64     `gorm:"column:acc_no;index" json:"account_number"`
	Message       string    `gorm:"column:message" json:"message"`
	Date          time.Time `gorm:"column:date" json:"date"`
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// NewTransaction builds a log entry for accountNumber stamped at.
func NewTransaction(accountNumber int64, message string, at time.Time) *Transaction {
	return &Transaction{
		AccountNumber: accountNumber,
		Message:       message,
		Date:          at,
	}
}

func DepositMessage(amount float64) string {
	return "Deposited " + FormatAmount(amount)
}

func WithdrawalMessage(amount float64) string {
	return "Withdrawn " + FormatAmount(amount)
}

// InterestMessage expects the already rounded interest.
func InterestMessage(interest float64) string {
	return "Interest Added " + FormatAmount(interest)
}

func LoanMessage(amount float64) string {
	return "Loan Taken " + FormatAmount(amount)
}
