package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParsePercentage parses a percentage string such as "7.50%" into a fraction (0.075).
// The trailing % is optional; the number is always read as a percentage.
func ParsePercentage(percentStr string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.Trim(strings.TrimSpace(percentStr), `"`))
	clean = strings.TrimSpace(strings.TrimSuffix(clean, "%"))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("invalid percentage: %q", percentStr)
	}

	value, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage: %q", percentStr)
	}
	return value.Div(hundred), nil
}

// FormatPercent renders a fraction as a percentage with the given number of decimals (0.075 -> "7.50%").
func FormatPercent(fraction decimal.Decimal, places int32) string {
	return fraction.Mul(hundred).StringFixed(places) + "%"
}

// PercentLabel renders a replacement-cost style fraction as a whole percent (0.15 -> "15%").
func PercentLabel(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).Round(2).String() + "%"
}
