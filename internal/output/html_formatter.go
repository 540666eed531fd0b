package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with Chart.js charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"frac": FormatFraction,
	"repl": FormatReplacement,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartXY is a Chart.js scatter point.
type chartXY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type htmlProjection struct {
	ID                      int
	ReplacementCostFraction decimal.Decimal
	Rows                    []domain.MergedProjectionRow
	Series                  []chartXY
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	var expenseIRR []chartXY
	for _, pt := range report.ExpenseVsIRR() {
		expenseIRR = append(expenseIRR, chartXY{X: pt.X.InexactFloat64(), Y: pt.Y.Mul(decimalHundred).InexactFloat64()})
	}

	var projections []htmlProjection
	for i, sc := range report.Scenarios {
		if sc.Projection == nil {
			continue
		}
		p := htmlProjection{
			ID:                      i,
			ReplacementCostFraction: sc.Projection.ReplacementCostFraction,
			Rows:                    YearlySnapshot(sc.Projection),
		}
		for _, pt := range sc.Projection.NetWealthSeries {
			p.Series = append(p.Series, chartXY{X: pt.X.InexactFloat64(), Y: pt.Y.InexactFloat64()})
		}
		projections = append(projections, p)
	}

	data := struct {
		*domain.ProjectionReport
		Results          []domain.ScenarioResult
		Recommendation   Recommendation
		Assumptions      []string
		ExpenseIRRSeries []chartXY
		Projections      []htmlProjection
	}{report, report.Results(), AnalyzeScenarios(report), assumptionsFor(report), expenseIRR, projections}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
