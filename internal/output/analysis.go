package output

import (
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarizes which replacement cost the model portfolio can fund.
type Recommendation struct {
	ReplacementCostFraction decimal.Decimal
	AnnualizedIRR           decimal.Decimal
	BreakevenProbability    decimal.Decimal
	// Achievable is false when every scenario needs more than the mean table return.
	Achievable bool
	Found      bool
}

// AnalyzeScenarios picks the highest replacement cost whose required annualized IRR
// does not exceed the mean portfolio return. When none qualifies it falls back to
// the scenario with the lowest required IRR.
func AnalyzeScenarios(report *domain.ProjectionReport) Recommendation {
	var best, cheapest *domain.ScenarioResult
	for i := range report.Scenarios {
		res := &report.Scenarios[i].Result
		if cheapest == nil || res.AnnualizedIRR.LessThan(cheapest.AnnualizedIRR) {
			cheapest = res
		}
		if res.AnnualizedIRR.GreaterThan(report.MeanReturn) {
			continue
		}
		if best == nil || res.ReplacementCostFraction.GreaterThan(best.ReplacementCostFraction) {
			best = res
		}
	}

	switch {
	case best != nil:
		return newRecommendation(best, true)
	case cheapest != nil:
		return newRecommendation(cheapest, false)
	default:
		return Recommendation{}
	}
}

func newRecommendation(res *domain.ScenarioResult, achievable bool) Recommendation {
	return Recommendation{
		ReplacementCostFraction: res.ReplacementCostFraction,
		AnnualizedIRR:           res.AnnualizedIRR,
		BreakevenProbability:    res.BreakevenProbability,
		Achievable:              achievable,
		Found:                   true,
	}
}

// YearlySnapshot returns the first merged row of every age for a projection.
func YearlySnapshot(mp *domain.MergedProjection) []domain.MergedProjectionRow {
	if mp == nil {
		return nil
	}
	var rows []domain.MergedProjectionRow
	lastAge := -1
	for _, row := range mp.Rows {
		if row.Age == lastAge {
			continue
		}
		lastAge = row.Age
		rows = append(rows, row)
	}
	return rows
}
