package dto

import (
	"bankdesk/internal/models"
)

// AmountRequest represents an amount entered for a deposit, withdrawal or loan
type AmountRequest struct {
	Amount float64 `json:"amount" validate:"positive_amount"`
}

// OperationResult describes the outcome of a balance-changing operation.
// Applied is false when the request was ignored because the amount was not positive.
type OperationResult struct {
	AccountNumber int64   `json:"account_number"`
	Amount        float64 `json:"amount"`
	NewBalance    float64 `json:"new_balance"`
	Message       string  `json:"message,omitempty"`
	Applied       bool    `json:"applied"`
}

// Skipped builds the result of an ignored request
func Skipped(accountNumber int64, amount float64) *OperationResult {
	return &OperationResult{
		AccountNumber: accountNumber,
		Amount:        amount,
	}
}

// FormattedBalance renders the new balance with two decimals
func (r *OperationResult) FormattedBalance() string {
	return models.FormatBalance(r.NewBalance)
}

// StatementResponse lists transaction log messages
type StatementResponse struct {
	AccountNumber int64    `json:"account_number"`
	Messages      []string `json:"messages"`
}

// IsEmpty reports whether there is nothing to show
func (r *StatementResponse) IsEmpty() bool {
	return len(r.Messages) == 0
}
