package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
)

// ConsoleVerboseFormatter renders the detailed text report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	in := report.Input

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED RETIREMENT CASHFLOW ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FINAL SALARY AND WEALTH")
	fmt.Fprintln(&buf, strings.Repeat("-", 45))
	fmt.Fprintf(&buf, "Final Monthly Salary:        %s\n", FormatCurrency(report.FinalSalary))
	fmt.Fprintf(&buf, "Final Annual Salary:         %s\n", pct.NewMoneyFromDecimal(report.FinalSalary).Annual().Format())
	fmt.Fprintf(&buf, "Total Contributions:         %s\n", FormatCurrency(report.TotalContributions()))
	fmt.Fprintf(&buf, "Wealth at Retirement:        %s\n", FormatCurrency(report.FinalWealth()))
	fmt.Fprintf(&buf, "Average Portfolio Return:    %s (age %d+)\n", FormatFraction(report.MeanReturn), in.StartAge)
	fmt.Fprintf(&buf, "Average Portfolio Volatility: %s\n", FormatFraction(report.MeanVolatility))
	fmt.Fprintln(&buf)

	writeAccumulationByYear(&buf, report.Accumulation)

	fmt.Fprintln(&buf, "REPLACEMENT COST SCENARIOS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if len(report.Scenarios) == 0 {
		fmt.Fprintln(&buf, "No replacement costs selected.")
		fmt.Fprintln(&buf)
	}
	for i, sc := range report.Scenarios {
		res := sc.Result
		fmt.Fprintf(&buf, "SCENARIO %d: %s OF FINAL SALARY\n", i+1, FormatReplacement(res.ReplacementCostFraction))
		fmt.Fprintln(&buf, strings.Repeat("-", 45))
		fmt.Fprintf(&buf, "  Retirement Monthly Expense: %s\n", FormatCurrency(res.RetirementMonthlyExpense))
		fmt.Fprintf(&buf, "  Present Value of Expenses:  %s\n", FormatCurrency(res.TotalPresentValue))
		fmt.Fprintf(&buf, "  IRR (monthly):              %s\n", res.MonthlyIRR.StringFixed(6))
		fmt.Fprintf(&buf, "  IRR (annualized):           %s\n", FormatFraction(res.AnnualizedIRR))
		fmt.Fprintf(&buf, "  Return Shortfall:           %s\n", FormatFraction(res.ReturnShortfall))
		fmt.Fprintf(&buf, "  Probability of Breakeven:   %s\n", FormatFraction(res.BreakevenProbability))
		fmt.Fprintln(&buf)
		if sc.Projection != nil {
			writeProjectionSnapshot(&buf, sc.Projection)
		}
	}

	rec := AnalyzeScenarios(report)
	if rec.Found {
		fmt.Fprintln(&buf, "RECOMMENDATION")
		fmt.Fprintln(&buf, strings.Repeat("-", 45))
		if rec.Achievable {
			fmt.Fprintf(&buf, "Highest replacement cost within the mean return: %s (IRR %s)\n",
				FormatReplacement(rec.ReplacementCostFraction), FormatFraction(rec.AnnualizedIRR))
		} else {
			fmt.Fprintf(&buf, "Every selection needs more than the mean return; closest is %s (IRR %s)\n",
				FormatReplacement(rec.ReplacementCostFraction), FormatFraction(rec.AnnualizedIRR))
		}
	}

	return buf.Bytes(), nil
}

// writeAccumulationByYear prints the last month of every working year.
func writeAccumulationByYear(w io.Writer, records []domain.MonthlyAccumulationRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintln(w, "ACCUMULATION BY YEAR (end of year)")
	fmt.Fprintln(w, strings.Repeat("-", 81))
	fmt.Fprintf(w, "%-5s %18s %22s %22s\n", "Age", "Monthly Savings", "Wealth (no return)", "Wealth (with return)")
	for i, rec := range records {
		if i+1 < len(records) && records[i+1].Age == rec.Age {
			continue
		}
		fmt.Fprintf(w, "%-5d %18s %22s %22s\n", rec.Age,
			FormatCurrency(rec.MonthlySavings),
			FormatCurrency(rec.CumulativeWealthNoReturn),
			FormatCurrency(rec.CumulativeWealthWithReturn))
	}
	fmt.Fprintln(w)
}

func writeProjectionSnapshot(w io.Writer, mp *domain.MergedProjection) {
	fmt.Fprintln(w, "  WEALTH VS EXPENSES (first month of each age)")
	fmt.Fprintf(w, "  %-5s %-13s %20s %20s %20s\n", "Age", "Phase", "Wealth", "Cumulative PV", "Net Wealth")
	for _, row := range YearlySnapshot(mp) {
		fmt.Fprintf(w, "  %-5d %-13s %20s %20s %20s\n", row.Age, row.Phase,
			FormatCurrency(row.CumulativeWealthWithReturn),
			FormatCurrency(row.CumulativePresentValue),
			FormatCurrency(row.NetWealth))
	}
	fmt.Fprintln(w)
}
