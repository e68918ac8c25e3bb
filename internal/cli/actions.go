package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bankdesk/internal/dto"
	apperrors "bankdesk/internal/errors"
	"bankdesk/internal/models"
	"bankdesk/internal/session"
)

// Every action returns only input errors. Service failures are shown to the
// user and the menu carries on.

// CreateAccount asks for a name and a PIN and opens the account
func (a *App) CreateAccount(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter Name", a.out)
	if err != nil {
		return err
	}
	pin, err := GetSecret(a.reader, "Set 4-digit PIN", a.out, a.secretFd)
	if err != nil {
		return err
	}

	resp, err := a.accounts.CreateAccount(ctx, dto.CreateAccountRequest{Name: name, PIN: pin})
	if err != nil {
		a.fail(ctx, err)
		return nil
	}

	a.render.info("Success", resp.Message, fmt.Sprintf("Account No: %d", resp.AccountNumber))
	return nil
}

// Login asks for credentials and starts a session. A nil session means the
// login was cancelled or rejected.
func (a *App) Login(ctx context.Context) (*session.Session, error) {
	text, err := GetSimpleText(a.reader, "Enter Account Number", a.out)
	if err != nil {
		return nil, err
	}
	accountNumber, err := ParseAccountNumber(text)
	if errors.Is(err, errCancelled) {
		return nil, nil
	}
	if err != nil {
		a.fail(ctx, err)
		return nil, nil
	}

	pin, err := GetSecret(a.reader, "Enter PIN", a.out, a.secretFd)
	if err != nil {
		return nil, err
	}

	s, err := a.sessions.Login(ctx, accountNumber, pin)
	if err != nil {
		a.fail(ctx, err)
		return nil, nil
	}

	a.logger.InfoContext(ctx, "session started", "session_id", s.ID.String(), "account_number", s.AccountNumber)
	a.render.info("Login Successful", "Welcome "+s.Name)
	return s, nil
}

// Logout ends the session
func (a *App) Logout(ctx context.Context, s *session.Session) {
	a.sessions.Logout()
	a.logger.InfoContext(ctx, "session ended", "session_id", s.ID.String())
	a.render.line("Logged out")
}

// Deposit asks for an amount and credits it
func (a *App) Deposit(ctx context.Context, s *session.Session) error {
	return a.amountAction(ctx, "Enter Amount", func(amount float64) (*dto.OperationResult, error) {
		return a.accounts.Deposit(ctx, s.AccountNumber, amount)
	}, "Success", "Deposit Successful")
}

// Withdraw asks for an amount and debits it
func (a *App) Withdraw(ctx context.Context, s *session.Session) error {
	return a.amountAction(ctx, "Enter Amount", func(amount float64) (*dto.OperationResult, error) {
		return a.accounts.Withdraw(ctx, s.AccountNumber, amount)
	}, "Success", "Withdrawal Successful")
}

// Loan asks for an amount and credits it as a loan
func (a *App) Loan(ctx context.Context, s *session.Session) error {
	return a.amountAction(ctx, "Enter Loan Amount", func(amount float64) (*dto.OperationResult, error) {
		return a.accounts.Loan(ctx, s.AccountNumber, amount)
	}, "Loan", "Loan Approved")
}

// CheckBalance shows the current balance
func (a *App) CheckBalance(ctx context.Context, s *session.Session) error {
	resp, err := a.accounts.CheckBalance(ctx, s.AccountNumber)
	if err != nil {
		a.fail(ctx, err)
		return nil
	}

	a.render.info("Balance", "Current Balance: "+resp.FormattedBalance())
	return nil
}

// TransactionHistory shows every log entry, oldest first
func (a *App) TransactionHistory(ctx context.Context, s *session.Session) error {
	resp, err := a.accounts.TransactionHistory(ctx, s.AccountNumber)
	if err != nil {
		a.fail(ctx, err)
		return nil
	}

	a.statement("History", resp)
	return nil
}

// MiniStatement shows the most recent entries, newest first
func (a *App) MiniStatement(ctx context.Context, s *session.Session) error {
	resp, err := a.accounts.MiniStatement(ctx, s.AccountNumber)
	if err != nil {
		a.fail(ctx, err)
		return nil
	}

	a.statement("Mini Statement", resp)
	return nil
}

// AddInterest credits interest on the whole balance
func (a *App) AddInterest(ctx context.Context, s *session.Session) error {
	result, err := a.accounts.AddInterest(ctx, s.AccountNumber)
	if err != nil {
		a.fail(ctx, err)
		return nil
	}

	a.render.info("Interest", "Interest Added "+models.FormatAmount(result.Amount), "New Balance: "+result.FormattedBalance())
	return nil
}

func (a *App) amountAction(ctx context.Context, prompt string, run func(float64) (*dto.OperationResult, error), title, message string) error {
	text, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	amount, err := ParseAmount(text)
	if errors.Is(err, errCancelled) {
		return nil
	}
	if err != nil {
		a.fail(ctx, err)
		return nil
	}

	result, err := run(amount)
	if err != nil {
		a.fail(ctx, err)
		return nil
	}
	if !result.Applied {
		return nil
	}

	a.render.info(title, message, "New Balance: "+result.FormattedBalance())
	return nil
}

func (a *App) statement(title string, resp *dto.StatementResponse) {
	if resp.IsEmpty() {
		a.render.info(title, "No transactions yet")
		return
	}
	a.render.info(title, strings.Join(resp.Messages, "\n"))
}

// fail shows err to the user. System errors are also logged with their cause.
func (a *App) fail(ctx context.Context, err error) {
	notice := apperrors.NoticeFromError(err, apperrors.WithSessionID(session.IDFromContext(ctx)))
	if notice.IsSystemError() {
		a.logger.ErrorContext(ctx, "operation failed", "error", err, "code", string(notice.Code))
	}
	a.render.notice(notice)
}
