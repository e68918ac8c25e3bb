package repositories

import (
	"crypto/subtle"
	"fmt"

	"bankdesk/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// PlainPINCodec stores PINs as entered, which keeps bank.db files written by
// earlier builds readable.
type PlainPINCodec struct{}

func (PlainPINCodec) Encode(pin string) (string, error) {
	return pin, nil
}

func (PlainPINCodec) Matches(stored, pin string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1
}

// BcryptPINCodec stores bcrypt hashes. Accounts created with the plain codec
// cannot log in once it is enabled.
type BcryptPINCodec struct {
	cost int
}

func NewBcryptPINCodec(cost int) *BcryptPINCodec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPINCodec{cost: cost}
}

func (c *BcryptPINCodec) Encode(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

func (c *BcryptPINCodec) Matches(stored, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
}

// NewPINCodec selects the codec named by cfg.PINStorage.
func NewPINCodec(cfg config.SecurityConfig) (PINCodec, error) {
	switch cfg.PINStorage {
	case "", config.PINStoragePlain:
		return PlainPINCodec{}, nil
	case config.PINStorageBcrypt:
		return NewBcryptPINCodec(cfg.BCryptCost), nil
	default:
		return nil, fmt.Errorf("unsupported PIN storage %q", cfg.PINStorage)
	}
}
