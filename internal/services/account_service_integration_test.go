package services_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"bankdesk/internal/database"
	"bankdesk/internal/dto"
	"bankdesk/internal/logging"
	"bankdesk/internal/repositories"
	"bankdesk/internal/services"
	"bankdesk/internal/session"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type AccountServiceIntegrationSuite struct {
	suite.Suite
	ctx      context.Context
	db       *database.DB
	service  services.AccountServiceInterface
	sessions *session.Manager
	faker    *gofakeit.Faker
}

func TestAccountServiceIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceIntegrationSuite))
}

func (s *AccountServiceIntegrationSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.SetupTestDB(s.T())
	s.faker = gofakeit.New(42)

	s.service = services.NewAccountService(
		repositories.NewAccountRepository(s.db.DB, repositories.PlainPINCodec{}),
		repositories.NewTransactionRepository(s.db.DB),
		services.NewPrometheusMetrics(prometheus.NewRegistry()),
		logging.Discard(),
	)
	s.sessions = session.NewManager(s.service)
}

func (s *AccountServiceIntegrationSuite) open(name, pin string) int64 {
	resp, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: name, PIN: pin})
	s.Require().NoError(err)
	return resp.AccountNumber
}

func (s *AccountServiceIntegrationSuite) balance(accountNumber int64) float64 {
	resp, err := s.service.CheckBalance(s.ctx, accountNumber)
	s.Require().NoError(err)
	return resp.Balance
}

func (s *AccountServiceIntegrationSuite) history(accountNumber int64) []string {
	resp, err := s.service.TransactionHistory(s.ctx, accountNumber)
	s.Require().NoError(err)
	return resp.Messages
}

func (s *AccountServiceIntegrationSuite) TestCreateAccount_NumbersIncreaseAndStartAtZero() {
	var previous int64
	for i := 0; i < 10; i++ {
		pin := s.faker.Numerify("####")
		accountNumber := s.open(s.faker.Name(), pin)

		s.Greater(accountNumber, previous)
		s.Zero(s.balance(accountNumber))
		previous = accountNumber
	}
}

func (s *AccountServiceIntegrationSuite) TestWithdraw_NeverGoesNegative() {
	accountNumber := s.open(s.faker.Name(), "1111")
	_, err := s.service.Deposit(s.ctx, accountNumber, 100)
	s.Require().NoError(err)

	for i := 0; i < 20; i++ {
		amount := s.faker.Float64Range(1, 250)
		before := s.balance(accountNumber)

		_, err := s.service.Withdraw(s.ctx, accountNumber, amount)
		if amount > before {
			s.ErrorIs(err, services.ErrInsufficientFunds)
			s.Equal(before, s.balance(accountNumber))
		} else {
			s.NoError(err)
		}
		s.GreaterOrEqual(s.balance(accountNumber), 0.0)
	}
}

func (s *AccountServiceIntegrationSuite) TestDepositWithdraw_RoundTrip() {
	accountNumber := s.open(s.faker.Name(), "2222")
	_, err := s.service.Deposit(s.ctx, accountNumber, 40)
	s.Require().NoError(err)

	for _, amount := range []float64{1, 25, 500, 1234} {
		before := s.balance(accountNumber)
		entries := len(s.history(accountNumber))

		_, err := s.service.Deposit(s.ctx, accountNumber, amount)
		s.Require().NoError(err)
		_, err = s.service.Withdraw(s.ctx, accountNumber, amount)
		s.Require().NoError(err)

		s.Equal(before, s.balance(accountNumber))
		s.Len(s.history(accountNumber), entries+2)
	}
}

func (s *AccountServiceIntegrationSuite) TestMiniStatement_IsReversedSuffixOfHistory() {
	accountNumber := s.open(s.faker.Name(), "3333")

	for i := 0; i < 8; i++ {
		_, err := s.service.Deposit(s.ctx, accountNumber, float64(i+1))
		s.Require().NoError(err)

		history := s.history(accountNumber)
		mini, err := s.service.MiniStatement(s.ctx, accountNumber)
		s.Require().NoError(err)

		s.LessOrEqual(len(mini.Messages), services.MiniStatementSize)
		for j, message := range mini.Messages {
			s.Equal(history[len(history)-1-j], message)
		}
	}
}

func (s *AccountServiceIntegrationSuite) TestAddInterest_CreditsRoundedAmount() {
	accountNumber := s.open(s.faker.Name(), "4444")
	_, err := s.service.Deposit(s.ctx, accountNumber, 123.45)
	s.Require().NoError(err)

	result, err := s.service.AddInterest(s.ctx, accountNumber)
	s.Require().NoError(err)

	s.Equal(6.17, result.Amount)
	s.InDelta(129.62, s.balance(accountNumber), 1e-9)
	s.Equal("Interest Added ₹6.17", s.history(accountNumber)[1])
}

func (s *AccountServiceIntegrationSuite) TestAddInterest_Uncapped() {
	accountNumber := s.open(s.faker.Name(), "5555")
	_, err := s.service.Deposit(s.ctx, accountNumber, 1000)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.service.AddInterest(s.ctx, accountNumber)
		s.Require().NoError(err)
	}

	s.InDelta(1157.63, s.balance(accountNumber), 1e-9)
	s.Len(s.history(accountNumber), 4)
}

func (s *AccountServiceIntegrationSuite) TestLoan_IsUnconditionalCredit() {
	accountNumber := s.open(s.faker.Name(), "6666")

	result, err := s.service.Loan(s.ctx, accountNumber, 50000)
	s.Require().NoError(err)
	s.Equal(50000.0, result.NewBalance)
	s.Equal([]string{"Loan Taken ₹50000"}, s.history(accountNumber))
}

func (s *AccountServiceIntegrationSuite) TestScenario_AliceSession() {
	accountNumber := s.open("Alice", "1234")
	s.Equal(int64(1), accountNumber)

	current, err := s.sessions.Login(s.ctx, 1, "1234")
	s.Require().NoError(err)
	s.Equal("Alice", current.Name)
	ctx := session.WithContext(s.ctx, current)

	result, err := s.service.Deposit(ctx, current.AccountNumber, 500)
	s.Require().NoError(err)
	s.Equal(500.0, result.NewBalance)
	s.Equal([]string{"Deposited ₹500"}, s.history(current.AccountNumber))

	_, err = s.service.Withdraw(ctx, current.AccountNumber, 700)
	s.ErrorIs(err, services.ErrInsufficientFunds)
	s.Equal(500.0, s.balance(current.AccountNumber))

	result, err = s.service.Withdraw(ctx, current.AccountNumber, 200)
	s.Require().NoError(err)
	s.Equal(300.0, result.NewBalance)

	result, err = s.service.AddInterest(ctx, current.AccountNumber)
	s.Require().NoError(err)
	s.Equal(15.0, result.Amount)
	s.Equal(315.0, result.NewBalance)

	mini, err := s.service.MiniStatement(ctx, current.AccountNumber)
	s.Require().NoError(err)
	s.Equal([]string{"Interest Added ₹15", "Withdrawn ₹200", "Deposited ₹500"}, mini.Messages)

	s.sessions.Logout()
	s.False(s.sessions.Active())
}

func (s *AccountServiceIntegrationSuite) TestScenario_LoginOnEmptyStore() {
	_, err := s.sessions.Login(s.ctx, 999, "0000")
	s.ErrorIs(err, services.ErrAuthFailed)
	s.False(s.sessions.Active())
}

func (s *AccountServiceIntegrationSuite) TestScenario_InvalidPINConsumesNoNumber() {
	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: "Bob", PIN: "12a4"})
	s.ErrorIs(err, services.ErrInvalidInput)

	var count int64
	s.Require().NoError(s.db.Raw("SELECT COUNT(*) FROM accounts").Scan(&count).Error)
	s.Zero(count)

	s.Equal(int64(1), s.open("Carol", "9876"))
}

func (s *AccountServiceIntegrationSuite) TestNonPositiveAmountsLeaveNoTrace() {
	accountNumber := s.open(s.faker.Name(), "7777")

	for _, amount := range []float64{0, -10} {
		_, err := s.service.Deposit(s.ctx, accountNumber, amount)
		s.NoError(err)
		_, err = s.service.Withdraw(s.ctx, accountNumber, amount)
		s.NoError(err)
		_, err = s.service.Loan(s.ctx, accountNumber, amount)
		s.NoError(err)
	}

	s.Zero(s.balance(accountNumber))
	s.Empty(s.history(accountNumber))
}

func (s *AccountServiceIntegrationSuite) TestCredit_BalanceStaysFinite() {
	accountNumber := s.open(s.faker.Name(), "2468")

	result, err := s.service.Deposit(s.ctx, accountNumber, 1e308)
	s.Require().NoError(err)
	s.Equal(1e308, result.NewBalance)

	_, err = s.service.Deposit(s.ctx, accountNumber, 1e308)
	s.ErrorIs(err, services.ErrInvalidInput)
	s.Contains(err.Error(), services.AmountTooLargeMessage)

	_, err = s.service.Loan(s.ctx, accountNumber, 1e308)
	s.ErrorIs(err, services.ErrInvalidInput)

	s.Equal(1e308, s.balance(accountNumber))
	history := s.history(accountNumber)
	s.Require().Len(history, 1)
	s.True(strings.HasPrefix(history[0], "Deposited ₹1"))

	s.NotPanics(func() {
		resp, err := s.service.CheckBalance(s.ctx, accountNumber)
		s.Require().NoError(err)
		s.NotEmpty(resp.FormattedBalance())
	})

	interest, err := s.service.AddInterest(s.ctx, accountNumber)
	s.Require().NoError(err)
	s.True(interest.Applied)
	s.Less(interest.NewBalance, math.MaxFloat64)

	_, err = s.service.Withdraw(s.ctx, accountNumber, 1)
	s.NoError(err)
}
