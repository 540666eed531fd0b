package calculation

import (
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
)

// wealthPrecision bounds the scale of both running balances, so a 0% month
// leaves them equal.
const wealthPrecision = 12

// ProjectAccumulation projects monthly savings and wealth across the working period.
// Salary grows once per completed year; wealth with return compounds at the
// monthly return of the age band each month falls in.
func ProjectAccumulation(input domain.ScenarioInput, table *ReturnTable) []domain.MonthlyAccumulationRecord {
	months := input.WorkingMonths()
	if months <= 0 {
		return nil
	}

	records := make([]domain.MonthlyAccumulationRecord, 0, months)
	rate := input.TotalContributionRate()
	growth := decimal.NewFromInt(1).Add(input.SalaryGrowthRate)

	salary := input.InitialSalary
	noReturn := input.InitialWealth
	withReturn := input.InitialWealth

	for m := 0; m < months; m++ {
		if m > 0 && m%12 == 0 {
			salary = salary.Mul(growth)
		}
		age := input.StartAge + m/12
		savings := salary.Mul(rate)

		noReturn = noReturn.Add(savings).Round(wealthPrecision)
		monthly := decimal.Zero
		if table != nil {
			monthly = table.MonthlyReturn(age)
		}
		withReturn = withReturn.Mul(decimal.NewFromInt(1).Add(monthly)).Add(savings).Round(wealthPrecision)

		records = append(records, domain.MonthlyAccumulationRecord{
			MonthIndex:                 m,
			Age:                        age,
			MonthlySavings:             savings,
			CumulativeWealthNoReturn:   noReturn,
			CumulativeWealthWithReturn: withReturn,
		})
	}

	return records
}

// MonthlySavings extracts the savings stream from accumulation records.
func MonthlySavings(records []domain.MonthlyAccumulationRecord) []decimal.Decimal {
	savings := make([]decimal.Decimal, len(records))
	for i, rec := range records {
		savings[i] = rec.MonthlySavings
	}
	return savings
}

// FinalSalary returns the monthly salary in the last working year:
// initialSalary × (1+g)^(workingYears−1).
func FinalSalary(input domain.ScenarioInput) decimal.Decimal {
	years := input.WorkingYears() - 1
	if years < 0 {
		years = 0
	}
	return input.InitialSalary.Mul(decimal.NewFromInt(1).Add(input.SalaryGrowthRate).Pow(decimal.NewFromInt(int64(years))))
}
