package models

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidMoney is returned when a decimal amount cannot be represented in cents
var ErrInvalidMoney = errors.New("invalid money amount")

// plain non-negative decimals only: no sign, exponent or bare dot
var moneyPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

var maxMoney = decimal.New(1<<62, -2)

// Money is an amount in cents. Prices carry exactly two fractional digits.
type Money int64

// ParseMoney parses a non-negative decimal string such as "25", "25.5" or "25.00"
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if !moneyPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidMoney, s, err)
	}
	if d.GreaterThan(maxMoney) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidMoney, s)
	}
	return Money(d.Shift(2).IntPart()), nil
}

// MustMoney is ParseMoney for literals known to be valid
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the amount in currency units
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Times multiplies the amount by a whole quantity
func (m Money) Times(n int) Money {
	return m * Money(n)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a decimal string to avoid float rounding
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidMoney, s)
		}
		s = unquoted
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
