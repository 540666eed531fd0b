package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/retirement-cashflow/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per replacement cost).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ReplacementCostPercent", "FinalSalary", "RetirementMonthlyExpense", "TotalPresentValue", "MonthlyIRR", "AnnualizedIRRPercent", "ReturnShortfallPercent", "BreakevenProbabilityPercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range report.Results() {
		row := []string{
			res.ReplacementCostFraction.Mul(decimalHundred).StringFixed(2),
			res.FinalSalary.StringFixed(2),
			res.RetirementMonthlyExpense.StringFixed(2),
			res.TotalPresentValue.StringFixed(2),
			res.MonthlyIRR.StringFixed(8),
			res.AnnualizedIRR.Mul(decimalHundred).StringFixed(4),
			res.ReturnShortfall.Mul(decimalHundred).StringFixed(4),
			res.BreakevenProbability.Mul(decimalHundred).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
