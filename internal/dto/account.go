package dto

import (
	"bankdesk/internal/models"
)

// Account Request DTOs

// CreateAccountRequest represents the input for opening a new account
type CreateAccountRequest struct {
	Name string `json:"name" validate:"account_name"`
	PIN  string `json:"pin" validate:"pin"`
}

// Account Response DTOs

// CreateAccountResponse represents the result of opening an account
type CreateAccountResponse struct {
	AccountNumber int64  `json:"account_number"`
	Message       string `json:"message"`
}

// NewCreateAccountResponse builds the confirmation shown after an account is opened
func NewCreateAccountResponse(accountNumber int64) *CreateAccountResponse {
	return &CreateAccountResponse{
		AccountNumber: accountNumber,
		Message:       "Account Created!",
	}
}

// BalanceResponse represents the result of a balance check
type BalanceResponse struct {
	AccountNumber int64   `json:"account_number"`
	Balance       float64 `json:"balance"`
}

// FormattedBalance renders the balance with two decimals
func (r *BalanceResponse) FormattedBalance() string {
	return models.FormatBalance(r.Balance)
}
