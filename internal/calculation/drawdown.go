package calculation

import (
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
)

// discountPrecision bounds the scale of the iterated discount factor.
const discountPrecision = 16

// DrawdownProjection is the retirement expense schedule for one replacement cost.
type DrawdownProjection struct {
	ReplacementCostFraction decimal.Decimal
	FinalSalary             decimal.Decimal
	BaseMonthlyExpense      decimal.Decimal
	TotalPresentValue       decimal.Decimal
	Records                 []domain.MonthlyDrawdownRecord
}

// ProjectDrawdown projects inflation-adjusted monthly expenses from retirement to death
// and discounts each month at the post-retirement return rate.
func ProjectDrawdown(input domain.ScenarioInput, fraction decimal.Decimal) DrawdownProjection {
	finalSalary := FinalSalary(input)
	base := finalSalary.Mul(fraction)

	dp := DrawdownProjection{
		ReplacementCostFraction: fraction,
		FinalSalary:             finalSalary,
		BaseMonthlyExpense:      base,
		TotalPresentValue:       decimal.Zero,
	}

	months := input.RetirementMonths()
	if months <= 0 {
		return dp
	}

	one := decimal.NewFromInt(1)
	inflation := one.Add(input.InflationRate)
	monthlyGrowth := one.Add(input.PostRetirementReturnRate.Div(monthsPerYear))

	dp.Records = make([]domain.MonthlyDrawdownRecord, 0, months)
	expense := base
	discount := one
	cumExpense := decimal.Zero
	cumPV := decimal.Zero

	for i := 0; i < months; i++ {
		if i > 0 && i%12 == 0 {
			expense = expense.Mul(inflation)
		}
		// (1+r/12)^-(i+1)
		discount = discount.Div(monthlyGrowth).Round(discountPrecision)
		pv := expense.Mul(discount)
		cumExpense = cumExpense.Add(expense)
		cumPV = cumPV.Add(pv)

		dp.Records = append(dp.Records, domain.MonthlyDrawdownRecord{
			MonthIndex:             i,
			Age:                    input.RetireAge + i/12,
			MonthlyExpense:         expense,
			CumulativeExpense:      cumExpense,
			DiscountFactor:         discount,
			PresentValueCashflow:   pv,
			CumulativePresentValue: cumPV,
		})
	}
	dp.TotalPresentValue = cumPV

	return dp
}
