package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/retirement-cashflow/internal/domain"
)

// ConsoleFormatter provides a concise styled summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, RenderTitle("RETIREMENT CASHFLOW SUMMARY"))
	fmt.Fprintf(&buf, "Final monthly salary: %s\n", FormatCurrency(report.FinalSalary))
	fmt.Fprintf(&buf, "Wealth at retirement: %s\n", FormatCurrency(report.FinalWealth()))
	fmt.Fprintf(&buf, "Mean portfolio return: %s  volatility: %s\n", FormatFraction(report.MeanReturn), FormatFraction(report.MeanVolatility))
	fmt.Fprintln(&buf)

	if len(report.Scenarios) == 0 {
		fmt.Fprintln(&buf, mutedStyle.Render("No replacement costs selected."))
		return buf.Bytes(), nil
	}

	table := Table{Headers: []string{"Replacement", "Monthly Expense", "PV of Expenses", "IRR (annual)", "Breakeven"}}
	for _, res := range report.Results() {
		table.Rows = append(table.Rows, []string{
			FormatReplacement(res.ReplacementCostFraction),
			FormatCurrency(res.RetirementMonthlyExpense),
			FormatCurrency(res.TotalPresentValue),
			FormatFraction(res.AnnualizedIRR),
			FormatFraction(res.BreakevenProbability),
		})
	}
	fmt.Fprint(&buf, RenderTable(table))

	rec := AnalyzeScenarios(report)
	if rec.Found {
		fmt.Fprintln(&buf)
		if rec.Achievable {
			fmt.Fprintln(&buf, goodStyle.Render(fmt.Sprintf("Recommended: %s replacement (IRR %s, breakeven %s)",
				FormatReplacement(rec.ReplacementCostFraction), FormatFraction(rec.AnnualizedIRR), FormatFraction(rec.BreakevenProbability))))
		} else {
			fmt.Fprintln(&buf, badStyle.Render(fmt.Sprintf("No selection is funded by the mean return; lowest required IRR is %s at %s",
				FormatFraction(rec.AnnualizedIRR), FormatReplacement(rec.ReplacementCostFraction))))
		}
	}
	return buf.Bytes(), nil
}
