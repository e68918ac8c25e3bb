package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

// AccountModelSuite defines the test suite for the Account model
type AccountModelSuite struct {
	suite.Suite
}

// TestAccountModelSuite runs the test suite
func TestAccountModelSuite(t *testing.T) {
	suite.Run(t, new(AccountModelSuite))
}

func (s *AccountModelSuite) TestTableName() {
	s.Equal("accounts", (&Account{}).TableName())
}

func (s *AccountModelSuite) TestValidate() {
	s.NoError((&Account{Name: "Alice", PIN: "1234"}).Validate())
	s.ErrorIs((&Account{Name: "   "}).Validate(), ErrNameRequired)
	s.ErrorIs((&Account{Name: "Alice", Balance: -0.01}).Validate(), ErrInvalidBalance)
	s.ErrorIs((&Account{Name: "Alice", Balance: math.Inf(1)}).Validate(), ErrInvalidBalance)
	s.ErrorIs((&Account{Name: "Alice", Balance: math.NaN()}).Validate(), ErrInvalidBalance)
}

func (s *AccountModelSuite) TestCanWithdraw() {
	account := &Account{Name: "Alice", Balance: 500}

	s.True(account.CanWithdraw(200))
	s.True(account.CanWithdraw(500))
	s.False(account.CanWithdraw(700))
	s.False(account.CanWithdraw(0))
	s.False(account.CanWithdraw(-5))
}

func (s *AccountModelSuite) TestCanCredit() {
	account := &Account{Name: "Alice", Balance: 1e308}
	s.True(account.CanCredit(0))
	s.True(account.CanCredit(1e307))
	s.False(account.CanCredit(1e308))
	s.False(account.CanCredit(math.MaxFloat64))
	s.False(account.CanCredit(-1))

	empty := &Account{Name: "Bob"}
	s.True(empty.CanCredit(math.MaxFloat64))
}
