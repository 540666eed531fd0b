package output

import (
	"fmt"

	"github.com/rpgo/retirement-cashflow/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a report.
func GenerateAssumptions(report *domain.ProjectionReport) []string {
	in := report.Input
	return []string{
		fmt.Sprintf("Working years: age %d to %d (%d months)", in.StartAge, in.RetireAge, in.WorkingMonths()),
		fmt.Sprintf("Retirement years: age %d to %d (%d months)", in.RetireAge, in.DeathAge, in.RetirementMonths()),
		fmt.Sprintf("Starting monthly salary: %s, growing %s per year", FormatCurrency(in.InitialSalary), FormatFraction(in.SalaryGrowthRate)),
		fmt.Sprintf("Savings rate: %s employee + %s employer", FormatFraction(in.ContributionRate), FormatFraction(in.EmployerContributionRate)),
		fmt.Sprintf("Initial wealth: %s", FormatCurrency(in.InitialWealth)),
		fmt.Sprintf("Retirement expenses inflate %s per year and are discounted at %s", FormatFraction(in.InflationRate), FormatFraction(in.PostRetirementReturnRate)),
		fmt.Sprintf("Average model portfolio return from age %d: %s (volatility %s)", in.StartAge, FormatFraction(report.MeanReturn), FormatFraction(report.MeanVolatility)),
		"Ages missing from the return table earn 0% during accumulation",
	}
}

// assumptionsFor prefers the assumptions stored on the report.
func assumptionsFor(report *domain.ProjectionReport) []string {
	if len(report.Assumptions) > 0 {
		return report.Assumptions
	}
	return GenerateAssumptions(report)
}
