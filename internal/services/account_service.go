package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bankdesk/internal/dto"
	apperrors "bankdesk/internal/errors"
	"bankdesk/internal/models"
	"bankdesk/internal/repositories"
	"bankdesk/internal/session"
	"bankdesk/internal/validation"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput      = apperrors.ErrInvalidInput
	ErrAuthFailed        = apperrors.ErrAuthFailed
	ErrInsufficientFunds = apperrors.ErrInsufficientFunds
	ErrAccountNotFound   = fmt.Errorf("account %w", apperrors.ErrNotFound)
	ErrStorageFailure    = apperrors.ErrStorageFailure
)

// AmountTooLargeMessage is shown when a credit would push the balance past
// the largest representable amount.
const AmountTooLargeMessage = "Amount is too large"

// MiniStatementSize is the number of entries in a mini statement
const MiniStatementSize = 5

// InterestRate is applied to the whole balance on every Add Interest
var InterestRate = decimal.RequireFromString("0.05")

// Operation names used in logs and metrics
const (
	OpCreateAccount = "create_account"
	OpAuthenticate  = "authenticate"
	OpDeposit       = "deposit"
	OpWithdraw      = "withdraw"
	OpCheckBalance  = "check_balance"
	OpHistory       = "transaction_history"
	OpMiniStatement = "mini_statement"
	OpAddInterest   = "add_interest"
	OpLoan          = "loan"
)

// validation tag -> error code shown to the user
var inputCodes = map[string]apperrors.ErrorCode{
	"pin":             apperrors.ValidationInvalidPIN,
	"account_name":    apperrors.ValidationRequiredField,
	"positive_amount": apperrors.ValidationInvalidAmount,
}

// accountService implements AccountServiceInterface interface
type accountService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	validator       *validation.Validator
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	now             func() time.Time
}

// NewAccountService creates the account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		validator:       validation.GetValidator(),
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateAccount opens an account with a zero balance
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (resp *dto.CreateAccountResponse, err error) {
	defer s.observe(ctx, OpCreateAccount, s.now(), &err)

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, inputError(err)
	}

	account := &models.Account{
		Name: req.Name,
		PIN:  req.PIN,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, storageError("failed to create account", err)
	}

	s.logger.InfoContext(ctx, "account created",
		"account_number", account.AccountNumber,
		"session_id", session.IDFromContext(ctx))

	return dto.NewCreateAccountResponse(account.AccountNumber), nil
}

// Authenticate returns the account matching both the number and the PIN.
// Unknown accounts and wrong PINs fail the same way.
func (s *accountService) Authenticate(ctx context.Context, accountNumber int64, pin string) (account *models.Account, err error) {
	defer s.observe(ctx, OpAuthenticate, s.now(), &err)

	account, err = s.accountRepo.FindByCredentials(ctx, accountNumber, pin)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "failure"})
			s.logger.WarnContext(ctx, "login rejected", "account_number", accountNumber)
			return nil, ErrAuthFailed
		}
		return nil, storageError("failed to authenticate", err)
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "success"})
	return account, nil
}

// Deposit credits a positive amount. Non-positive amounts are ignored.
func (s *accountService) Deposit(ctx context.Context, accountNumber int64, amount float64) (result *dto.OperationResult, err error) {
	defer s.observe(ctx, OpDeposit, s.now(), &err)

	return s.credit(ctx, OpDeposit, accountNumber, amount, models.DepositMessage)
}

// Loan credits the requested amount unconditionally. Non-positive amounts are ignored.
func (s *accountService) Loan(ctx context.Context, accountNumber int64, amount float64) (result *dto.OperationResult, err error) {
	defer s.observe(ctx, OpLoan, s.now(), &err)

	return s.credit(ctx, OpLoan, accountNumber, amount, models.LoanMessage)
}

// Withdraw debits a positive amount not exceeding the current balance.
// Non-positive amounts are ignored.
func (s *accountService) Withdraw(ctx context.Context, accountNumber int64, amount float64) (result *dto.OperationResult, err error) {
	defer s.observe(ctx, OpWithdraw, s.now(), &err)

	apply, err := s.checkAmount(amount)
	if err != nil {
		return nil, err
	}
	if !apply {
		return dto.Skipped(accountNumber, amount), nil
	}

	balance, err := s.accountRepo.GetBalance(ctx, accountNumber)
	if err != nil {
		return nil, repositoryError("failed to read balance", err)
	}

	current := models.Account{AccountNumber: accountNumber, Balance: balance}
	if !current.CanWithdraw(amount) {
		s.logger.InfoContext(ctx, "withdrawal declined",
			"account_number", accountNumber,
			"amount", amount,
			"session_id", session.IDFromContext(ctx))
		return nil, ErrInsufficientFunds
	}

	return s.apply(ctx, OpWithdraw, accountNumber, amount, -amount, models.WithdrawalMessage(amount))
}

// CheckBalance returns the stored balance
func (s *accountService) CheckBalance(ctx context.Context, accountNumber int64) (resp *dto.BalanceResponse, err error) {
	defer s.observe(ctx, OpCheckBalance, s.now(), &err)

	balance, err := s.accountRepo.GetBalance(ctx, accountNumber)
	if err != nil {
		return nil, repositoryError("failed to read balance", err)
	}

	return &dto.BalanceResponse{AccountNumber: accountNumber, Balance: balance}, nil
}

// TransactionHistory returns every log message, oldest first
func (s *accountService) TransactionHistory(ctx context.Context, accountNumber int64) (resp *dto.StatementResponse, err error) {
	defer s.observe(ctx, OpHistory, s.now(), &err)

	return s.statement(ctx, accountNumber, 0)
}

// MiniStatement returns the most recent log messages, newest first
func (s *accountService) MiniStatement(ctx context.Context, accountNumber int64) (resp *dto.StatementResponse, err error) {
	defer s.observe(ctx, OpMiniStatement, s.now(), &err)

	return s.statement(ctx, accountNumber, MiniStatementSize)
}

// AddInterest credits round(balance * InterestRate, 2). There is no cap on how
// often it may be applied.
func (s *accountService) AddInterest(ctx context.Context, accountNumber int64) (result *dto.OperationResult, err error) {
	defer s.observe(ctx, OpAddInterest, s.now(), &err)

	balance, err := s.accountRepo.GetBalance(ctx, accountNumber)
	if err != nil {
		return nil, repositoryError("failed to read balance", err)
	}

	interest := models.PercentOf(balance, InterestRate)
	current := models.Account{AccountNumber: accountNumber, Balance: balance}
	if !current.CanCredit(interest) {
		return nil, s.creditDeclined(ctx, OpAddInterest, accountNumber, interest)
	}

	return s.apply(ctx, OpAddInterest, accountNumber, interest, interest, models.InterestMessage(interest))
}

func (s *accountService) credit(ctx context.Context, op string, accountNumber int64, amount float64, message func(float64) string) (*dto.OperationResult, error) {
	apply, err := s.checkAmount(amount)
	if err != nil {
		return nil, err
	}
	if !apply {
		return dto.Skipped(accountNumber, amount), nil
	}

	balance, err := s.accountRepo.GetBalance(ctx, accountNumber)
	if err != nil {
		return nil, repositoryError("failed to read balance", err)
	}

	current := models.Account{AccountNumber: accountNumber, Balance: balance}
	if !current.CanCredit(amount) {
		return nil, s.creditDeclined(ctx, op, accountNumber, amount)
	}

	return s.apply(ctx, op, accountNumber, amount, amount, message(amount))
}

// creditDeclined reports a credit the balance cannot hold
func (s *accountService) creditDeclined(ctx context.Context, op string, accountNumber int64, amount float64) error {
	s.logger.WarnContext(ctx, "credit declined",
		"operation", op,
		"account_number", accountNumber,
		"amount", amount,
		"session_id", session.IDFromContext(ctx))
	return apperrors.NewInputError(apperrors.ValidationInvalidAmount, AmountTooLargeMessage)
}

// apply adjusts the balance and appends the log entry in one store transaction
func (s *accountService) apply(ctx context.Context, op string, accountNumber int64, amount, delta float64, message string) (*dto.OperationResult, error) {
	entry := models.NewTransaction(accountNumber, message, s.now())

	newBalance, err := s.accountRepo.ApplyBalanceChange(ctx, accountNumber, delta, entry)
	if err != nil {
		return nil, repositoryError("failed to apply "+op, err)
	}

	s.metrics.RecordGauge("operation_amount", amount, map[string]string{"operation": op})
	s.logger.InfoContext(ctx, "balance changed",
		"operation", op,
		"account_number", accountNumber,
		"amount", amount,
		"balance", newBalance,
		"session_id", session.IDFromContext(ctx))

	return &dto.OperationResult{
		AccountNumber: accountNumber,
		Amount:        amount,
		NewBalance:    newBalance,
		Message:       message,
		Applied:       true,
	}, nil
}

func (s *accountService) statement(ctx context.Context, accountNumber int64, limit int) (*dto.StatementResponse, error) {
	messages, err := s.transactionRepo.ListMessages(ctx, accountNumber, limit)
	if err != nil {
		return nil, repositoryError("failed to list transactions", err)
	}

	return &dto.StatementResponse{AccountNumber: accountNumber, Messages: messages}, nil
}

// checkAmount reports whether amount should be applied. Amounts <= 0 are
// skipped silently; amounts that are not finite are invalid input.
func (s *accountService) checkAmount(amount float64) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	if err := s.validator.Struct(dto.AmountRequest{Amount: amount}); err != nil {
		return false, inputError(err)
	}
	return true, nil
}

// observe records the outcome and duration of an operation
func (s *accountService) observe(ctx context.Context, op string, start time.Time, errp *error) {
	s.metrics.RecordProcessingTime(op, s.now().Sub(start))

	err := *errp
	if err == nil {
		s.metrics.IncrementCounter("operation.success", map[string]string{"operation": op})
		return
	}

	code := apperrors.Classify(err)
	s.metrics.IncrementCounter("operation.failed", map[string]string{
		"operation": op,
		"reason":    string(code),
	})
	if apperrors.IsSystemCode(code) {
		s.logger.ErrorContext(ctx, "operation failed",
			"operation", op,
			"error", err,
			"session_id", session.IDFromContext(ctx))
	}
}

func inputError(err error) error {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		code, ok := inputCodes[fe.Tag]
		if !ok {
			code = apperrors.ValidationGeneral
		}
		return apperrors.NewInputError(code, fe.Message)
	}
	return apperrors.NewInputError(apperrors.ValidationGeneral, err.Error())
}

// repositoryError maps repository errors onto the service taxonomy
func repositoryError(msg string, err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return ErrAccountNotFound
	}
	return storageError(msg, err)
}

func storageError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorageFailure, err)
}

type nopMetrics struct{}

func (nopMetrics) IncrementCounter(string, map[string]string) {}
func (nopMetrics) RecordProcessingTime(string, time.Duration) {}
func (nopMetrics) RecordGauge(string, float64, map[string]string) {}
