package calculation

import (
	"sort"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
)

// MergeProjection joins accumulation and drawdown records by age into one
// wealth-vs-expense table. Each column is forward filled from its last seen
// value; columns never seen stay zero. NetWealth is wealth with return minus
// cumulative present value of expenses.
func MergeProjection(fraction decimal.Decimal, accumulation []domain.MonthlyAccumulationRecord, drawdown []domain.MonthlyDrawdownRecord) *domain.MergedProjection {
	rows := make([]domain.MergedProjectionRow, 0, len(accumulation)+len(drawdown))
	for _, rec := range accumulation {
		rows = append(rows, domain.MergedProjectionRow{
			Age:                        rec.Age,
			Phase:                      domain.PhaseAccumulation,
			Month:                      rec.MonthIndex + 1,
			MonthlySavings:             rec.MonthlySavings,
			CumulativeWealthNoReturn:   rec.CumulativeWealthNoReturn,
			CumulativeWealthWithReturn: rec.CumulativeWealthWithReturn,
		})
	}
	for _, rec := range drawdown {
		rows = append(rows, domain.MergedProjectionRow{
			Age:                    rec.Age,
			Phase:                  domain.PhaseDrawdown,
			Month:                  rec.MonthIndex + 1,
			MonthlyExpense:         rec.MonthlyExpense,
			CumulativeExpense:      rec.CumulativeExpense,
			DiscountFactor:         rec.DiscountFactor,
			PresentValueCashflow:   rec.PresentValueCashflow,
			CumulativePresentValue: rec.CumulativePresentValue,
		})
	}
	// Stable so each phase keeps its month order within an age.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Age < rows[j].Age })

	var last domain.MergedProjectionRow
	for i := range rows {
		row := &rows[i]
		if row.Phase == domain.PhaseAccumulation {
			last.MonthlySavings = row.MonthlySavings
			last.CumulativeWealthNoReturn = row.CumulativeWealthNoReturn
			last.CumulativeWealthWithReturn = row.CumulativeWealthWithReturn
			row.MonthlyExpense = last.MonthlyExpense
			row.CumulativeExpense = last.CumulativeExpense
			row.DiscountFactor = last.DiscountFactor
			row.PresentValueCashflow = last.PresentValueCashflow
			row.CumulativePresentValue = last.CumulativePresentValue
		} else {
			last.MonthlyExpense = row.MonthlyExpense
			last.CumulativeExpense = row.CumulativeExpense
			last.DiscountFactor = row.DiscountFactor
			last.PresentValueCashflow = row.PresentValueCashflow
			last.CumulativePresentValue = row.CumulativePresentValue
			row.MonthlySavings = last.MonthlySavings
			row.CumulativeWealthNoReturn = last.CumulativeWealthNoReturn
			row.CumulativeWealthWithReturn = last.CumulativeWealthWithReturn
		}
		row.NetWealth = row.CumulativeWealthWithReturn.Sub(row.CumulativePresentValue)
	}

	return &domain.MergedProjection{
		ReplacementCostFraction: fraction,
		Rows:                    rows,
		NetWealthSeries:         netWealthSeries(rows),
	}
}

// netWealthSeries keeps the first merged row of each distinct age.
func netWealthSeries(rows []domain.MergedProjectionRow) []domain.ChartPoint {
	var points []domain.ChartPoint
	seen := make(map[int]bool)
	for _, row := range rows {
		if seen[row.Age] {
			continue
		}
		seen[row.Age] = true
		points = append(points, domain.ChartPoint{
			X: decimal.NewFromInt(int64(row.Age)),
			Y: row.NetWealth,
		})
	}
	return points
}
