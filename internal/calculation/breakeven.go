package calculation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// ReturnShortfall is how far the annualized IRR falls below the mean table return.
func ReturnShortfall(meanReturn, annualizedIRR decimal.Decimal) decimal.Decimal {
	return meanReturn.Sub(annualizedIRR)
}

// BreakevenProbability estimates the chance the portfolio earns the required IRR
// as Φ((meanReturn − shortfall) / meanVolatility). All inputs are fractions.
// This is a heuristic kept for compatibility with existing reports.
func BreakevenProbability(meanReturn, meanVolatility, annualizedIRR decimal.Decimal) (decimal.Decimal, error) {
	if meanVolatility.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: mean volatility is zero", ErrZeroVolatility)
	}
	shortfall := ReturnShortfall(meanReturn, annualizedIRR)
	z := meanReturn.Sub(shortfall).Div(meanVolatility).InexactFloat64()
	p := NormalCDF(z)
	if math.IsNaN(p) {
		return decimal.Zero, fmt.Errorf("%w: breakeven probability undefined for z=%v", ErrZeroVolatility, z)
	}
	return decimal.NewFromFloat(p), nil
}
