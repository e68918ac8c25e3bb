package cli

import (
	"context"
	"strings"

	"bankdesk/internal/session"
)

var topMenu = []string{
	"Create Account",
	"Login",
	"Exit",
}

var dashboardMenu = []string{
	"Deposit",
	"Withdraw",
	"Check Balance",
	"Transaction History",
	"Mini Statement",
	"Add Interest",
	"Apply Loan",
	"Logout",
}

// root runs the top-level menu. Input errors (including io.EOF) end the loop.
func (a *App) root(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.render.menu("BANKING SYSTEM", topMenu)
		choice, err := GetSimpleText(a.reader, "Choose an option", a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "":
			continue
		case "1", "create", "create account":
			err = a.guard(ctx, "create_account", func() error {
				return a.CreateAccount(ctx)
			})
		case "2", "login":
			err = a.guard(ctx, "login", func() error {
				s, err := a.Login(ctx)
				if err != nil || s == nil {
					return err
				}
				return a.dashboard(ctx, s)
			})
		case "3", "exit", "quit":
			a.render.line("Bye!")
			return nil
		default:
			a.render.line("Unknown option: " + choice)
		}

		if err != nil {
			return err
		}
	}
}

// dashboard runs the menu of a logged-in account until logout
func (a *App) dashboard(ctx context.Context, s *session.Session) error {
	ctx = session.WithContext(ctx, s)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.render.menu("Banking Menu", dashboardMenu)
		choice, err := GetSimpleText(a.reader, "Choose an option", a.out)
		if err != nil {
			return err
		}

		if isLogout(choice) {
			a.Logout(ctx, s)
			return nil
		}

		action, ok := a.dashboardAction(choice)
		if !ok {
			if choice != "" {
				a.render.line("Unknown option: " + choice)
			}
			continue
		}

		if err := a.guard(ctx, choice, func() error { return action(ctx, s) }); err != nil {
			return err
		}
	}
}

func isLogout(choice string) bool {
	choice = strings.ToLower(choice)
	return choice == "8" || choice == "logout"
}

// dashboardAction resolves a menu choice by number or name
func (a *App) dashboardAction(choice string) (func(context.Context, *session.Session) error, bool) {
	switch strings.ToLower(choice) {
	case "1", "deposit":
		return a.Deposit, true
	case "2", "withdraw":
		return a.Withdraw, true
	case "3", "balance", "check balance":
		return a.CheckBalance, true
	case "4", "history", "transaction history":
		return a.TransactionHistory, true
	case "5", "mini", "mini statement":
		return a.MiniStatement, true
	case "6", "interest", "add interest":
		return a.AddInterest, true
	case "7", "loan", "apply loan":
		return a.Loan, true
	default:
		return nil, false
	}
}
