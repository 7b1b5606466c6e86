package store

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// parsePrice converts a form-submitted money string into a decimal.
// Empty input is an error so callers can report the missing field.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(s)
}
