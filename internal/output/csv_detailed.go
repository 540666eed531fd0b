package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/retirement-cashflow/internal/domain"
)

// CSVDetailedExporter writes the merged monthly projection of every replacement cost.
// Without a merged projection the drawdown records are exported on their own.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ReplacementCostPercent", "Phase", "Age", "Month", "MonthlySavings", "WealthNoReturn", "WealthWithReturn", "MonthlyExpense", "CumulativeExpense", "DiscountFactor", "PVCashflow", "CumulativePV", "NetWealth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		label := sc.Result.ReplacementCostFraction.Mul(decimalHundred).StringFixed(2)
		var rows []domain.MergedProjectionRow
		if sc.Projection != nil {
			rows = sc.Projection.Rows
		} else {
			rows = drawdownRows(sc.Drawdown)
		}
		for _, r := range rows {
			row := []string{
				label,
				r.Phase,
				intToString(r.Age),
				intToString(r.Month),
				r.MonthlySavings.StringFixed(2),
				r.CumulativeWealthNoReturn.StringFixed(2),
				r.CumulativeWealthWithReturn.StringFixed(2),
				r.MonthlyExpense.StringFixed(2),
				r.CumulativeExpense.StringFixed(2),
				r.DiscountFactor.StringFixed(8),
				r.PresentValueCashflow.StringFixed(2),
				r.CumulativePresentValue.StringFixed(2),
				r.NetWealth.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func drawdownRows(records []domain.MonthlyDrawdownRecord) []domain.MergedProjectionRow {
	rows := make([]domain.MergedProjectionRow, len(records))
	for i, rec := range records {
		rows[i] = domain.MergedProjectionRow{
			Age:                    rec.Age,
			Phase:                  domain.PhaseDrawdown,
			Month:                  rec.MonthIndex + 1,
			MonthlyExpense:         rec.MonthlyExpense,
			CumulativeExpense:      rec.CumulativeExpense,
			DiscountFactor:         rec.DiscountFactor,
			PresentValueCashflow:   rec.PresentValueCashflow,
			CumulativePresentValue: rec.CumulativePresentValue,
		}
	}
	return rows
}
