package output

import (
	"strconv"

	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency with grouping and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return pct.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal already in percent units with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatFraction formats a 0-1 fraction as a percentage with 2 decimals.
func FormatFraction(fraction decimal.Decimal) string { return pct.FormatPercent(fraction, 2) }

// FormatReplacement labels a replacement cost fraction ("15%").
func FormatReplacement(fraction decimal.Decimal) string { return pct.PercentLabel(fraction) }

var decimalHundred = decimal.NewFromInt(100)

func intToString(i int) string { return strconv.Itoa(i) }
