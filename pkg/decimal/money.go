package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses an amount such as "1234.5", "$1,234.50" or "-$20".
func NewMoneyFromString(value string) (Money, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	sign := ""
	if strings.HasPrefix(clean, "-") {
		sign, clean = "-", clean[1:]
	}
	d, err := decimal.NewFromString(sign + strings.TrimPrefix(clean, "$"))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(monthsPerYear)}
}

// String returns the amount fixed to two decimals without grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped returns the amount with two decimals and comma thousands separators, e.g. "1,234,567.89".
func (m Money) Grouped() string {
	s := m.Decimal.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

// Format formats the money amount with a currency symbol and grouping.
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + NewMoneyFromDecimal(m.Decimal.Abs()).Grouped()
	}
	return "$" + m.Grouped()
}
