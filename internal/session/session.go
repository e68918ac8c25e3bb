package session

import (
	"context"
	"errors"
	"time"

	"bankdesk/internal/models"

	"github.com/google/uuid"
)

// ErrNoSession is returned when a dashboard operation runs without a logged-in account
var ErrNoSession = errors.New("no active session")

// Session is the account currently logged in. It lives only as long as the process.
type Session struct {
	ID            uuid.UUID
	AccountNumber int64
	Name          string
	StartedAt     time.Time
}

// Authenticator verifies credentials for the session manager
type Authenticator interface {
	Authenticate(ctx context.Context, accountNumber int64, pin string) (*models.Account, error)
}

// Manager holds at most one session. The presentation layer owns the manager
// and passes the current session to every dashboard operation.
type Manager struct {
	auth    Authenticator
	current *Session
	now     func() time.Time
}

// NewManager creates a manager with no active session
func NewManager(auth Authenticator) *Manager {
	return &Manager{
		auth: auth,
		now:  time.Now,
	}
}

// Login authenticates and, on success, replaces the current session
func (m *Manager) Login(ctx context.Context, accountNumber int64, pin string) (*Session, error) {
	account, err := m.auth.Authenticate(ctx, accountNumber, pin)
	if err != nil {
		return nil, err
	}

	m.current = &Session{
		ID:            uuid.New(),
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		StartedAt:     m.now(),
	}
	return m.current, nil
}

// Logout clears the current session
func (m *Manager) Logout() {
	m.current = nil
}

// Current returns the active session, or ErrNoSession
func (m *Manager) Current() (*Session, error) {
	if m.current == nil {
		return nil, ErrNoSession
	}
	return m.current, nil
}

// Active reports whether an account is logged in
func (m *Manager) Active() bool {
	return m.current != nil
}

type contextKey struct{}

// WithContext attaches the session to ctx so downstream logs can be correlated
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached to ctx, if any
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// IDFromContext returns the session id attached to ctx, or an empty string
func IDFromContext(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.ID.String()
	}
	return ""
}
