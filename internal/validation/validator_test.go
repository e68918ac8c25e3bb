package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type credentials struct {
	Name string `json:"name" validate:"account_name"`
	PIN  string `json:"pin" validate:"pin"`
}

type amount struct {
	Amount float64 `json:"amount" validate:"positive_amount"`
}

func TestValidator_PIN(t *testing.T) {
	tests := []struct {
		name  string
		pin   string
		valid bool
	}{
		{"four digits", "1234", true},
		{"leading zeros", "0007", true},
		{"too short", "123", false},
		{"too long", "12345", false},
		{"letters", "12a4", false},
		{"empty", "", false},
		{"spaces", " 123", false},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(credentials{Name: "Alice", PIN: tt.pin})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, "PIN must be 4 digits")
			}
		})
	}
}

func TestValidator_AccountName(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(credentials{Name: "Bob", PIN: "1111"}))
	assert.EqualError(t, v.Struct(credentials{Name: "", PIN: "1111"}), "Name is required")
	assert.EqualError(t, v.Struct(credentials{Name: "   ", PIN: "1111"}), "Name is required")
}

func TestValidator_PositiveAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"positive", 500, true},
		{"fraction", 0.01, true},
		{"zero", 0, false},
		{"negative", -10, false},
		{"nan", math.NaN(), false},
		{"infinite", math.Inf(1), false},
	}

	v := GetValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(amount{Amount: tt.amount})
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestValidator_FieldError(t *testing.T) {
	err := NewValidator().Struct(credentials{Name: "Bob", PIN: "12a4"})

	var fe *FieldError
	if assert.True(t, errors.As(err, &fe)) {
		assert.Equal(t, "pin", fe.Field)
		assert.Equal(t, "pin", fe.Tag)
		assert.Equal(t, "PIN must be 4 digits", fe.Message)
	}
}
