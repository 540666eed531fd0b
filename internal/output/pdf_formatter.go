package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/retirement-cashflow/internal/domain"
)

// PDFFormatter renders the report as an A4 PDF with both chart series.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
	pdfChartHeight  = 70.0
)

type pdfReport struct {
	pdf    *fpdf.Fpdf
	report *domain.ProjectionReport
}

func (p PDFFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", ""), report: report}
	r.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	r.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	r.pdf.SetTitle("Retirement Cashflow Report", false)

	r.addSummaryPage()
	r.addScenarioPage()
	for _, sc := range report.Scenarios {
		if sc.Projection != nil {
			r.addProjectionPage(sc.Projection)
		}
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) sectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(pdfMarginLeft, r.pdf.GetY(), pdfMarginLeft+pdfContentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) keyValue(label, value string) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.CellFormat(pdfContentWidth-60, 6, value, "", 1, "L", false, 0, "")
}

func (r *pdfReport) addSummaryPage() {
	rep := r.report
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 14, "Retirement Cashflow Report", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(90, 90, 90)
	r.pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("Working from age %d to %d, retired until %d",
		rep.Input.StartAge, rep.Input.RetireAge, rep.Input.DeathAge), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.sectionHeader("Summary")
	r.keyValue("Final monthly salary:", FormatCurrency(rep.FinalSalary))
	r.keyValue("Total contributions:", FormatCurrency(rep.TotalContributions()))
	r.keyValue("Wealth at retirement:", FormatCurrency(rep.FinalWealth()))
	r.keyValue("Mean portfolio return:", FormatFraction(rep.MeanReturn))
	r.keyValue("Mean portfolio volatility:", FormatFraction(rep.MeanVolatility))
	if rec := AnalyzeScenarios(rep); rec.Found {
		label := "Recommended replacement:"
		if !rec.Achievable {
			label = "Lowest required IRR at:"
		}
		r.keyValue(label, fmt.Sprintf("%s (IRR %s)", FormatReplacement(rec.ReplacementCostFraction), FormatFraction(rec.AnnualizedIRR)))
	}
	r.pdf.Ln(4)

	r.sectionHeader("Key Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range assumptionsFor(rep) {
		r.pdf.MultiCell(pdfContentWidth, 5, "- "+a, "", "L", false)
	}
}

func (r *pdfReport) addScenarioPage() {
	r.pdf.AddPage()
	r.sectionHeader("Replacement Cost Scenarios")

	results := r.report.Results()
	if len(results) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.CellFormat(pdfContentWidth, 6, "No replacement costs selected.", "", 1, "L", false, 0, "")
		return
	}

	headers := []string{"Replacement", "Monthly Expense", "PV of Expenses", "IRR (annual)", "Shortfall", "Breakeven"}
	widths := []float64{25, 32, 38, 28, 27, 30}
	r.tableHeader(headers, widths)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(30, 30, 30)
	for i, res := range results {
		r.rowFill(i)
		cells := []string{
			FormatReplacement(res.ReplacementCostFraction),
			FormatCurrency(res.RetirementMonthlyExpense),
			FormatCurrency(res.TotalPresentValue),
			FormatFraction(res.AnnualizedIRR),
			FormatFraction(res.ReturnShortfall),
			FormatFraction(res.BreakevenProbability),
		}
		for j, c := range cells {
			align := "R"
			if j == 0 {
				align = "L"
			}
			r.pdf.CellFormat(widths[j], 6, c, "B", 0, align, true, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(6)

	var points []chartPoint
	for _, pt := range r.report.ExpenseVsIRR() {
		points = append(points, chartPoint{x: pt.X.InexactFloat64(), y: pt.Y.Mul(decimalHundred).InexactFloat64()})
	}
	r.lineChart("Retirement Monthly Expense vs Annualized IRR (%)", points)
}

func (r *pdfReport) addProjectionPage(mp *domain.MergedProjection) {
	r.pdf.AddPage()
	r.sectionHeader(fmt.Sprintf("Wealth vs Expenses: %s Replacement", FormatReplacement(mp.ReplacementCostFraction)))

	var points []chartPoint
	for _, pt := range mp.NetWealthSeries {
		points = append(points, chartPoint{x: pt.X.InexactFloat64(), y: pt.Y.InexactFloat64()})
	}
	r.lineChart("Net Wealth by Age", points)
	r.pdf.Ln(4)

	headers := []string{"Age", "Phase", "Wealth", "Cumulative PV", "Net Wealth"}
	widths := []float64{15, 30, 45, 45, 45}
	r.tableHeader(headers, widths)
	r.pdf.SetFont("Arial", "", 8)
	r.pdf.SetTextColor(30, 30, 30)
	for i, row := range YearlySnapshot(mp) {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.tableHeader(headers, widths)
			r.pdf.SetFont("Arial", "", 8)
			r.pdf.SetTextColor(30, 30, 30)
		}
		r.rowFill(i)
		r.pdf.CellFormat(widths[0], 5, intToString(row.Age), "B", 0, "L", true, 0, "")
		r.pdf.CellFormat(widths[1], 5, row.Phase, "B", 0, "L", true, 0, "")
		r.pdf.CellFormat(widths[2], 5, FormatCurrency(row.CumulativeWealthWithReturn), "B", 0, "R", true, 0, "")
		r.pdf.CellFormat(widths[3], 5, FormatCurrency(row.CumulativePresentValue), "B", 0, "R", true, 0, "")
		r.pdf.CellFormat(widths[4], 5, FormatCurrency(row.NetWealth), "B", 1, "R", true, 0, "")
	}
}

func (r *pdfReport) tableHeader(headers []string, widths []float64) {
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, h, "", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) rowFill(i int) {
	if i%2 == 0 {
		r.pdf.SetFillColor(245, 247, 250)
	} else {
		r.pdf.SetFillColor(255, 255, 255)
	}
}

type chartPoint struct{ x, y float64 }

// lineChart draws points joined by segments inside a framed plot area with min/max axis labels.
func (r *pdfReport) lineChart(title string, points []chartPoint) {
	if r.pdf.GetY()+pdfChartHeight+12 > 297-pdfMarginBottom {
		r.pdf.AddPage()
	}
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 6, title, "", 1, "L", false, 0, "")

	left := pdfMarginLeft + 22
	top := r.pdf.GetY() + 2
	width := pdfContentWidth - 26
	height := pdfChartHeight - 10

	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetLineWidth(0.2)
	r.pdf.Rect(left, top, width, height, "D")

	if len(points) > 0 {
		minX, maxX, minY, maxY := points[0].x, points[0].x, points[0].y, points[0].y
		for _, p := range points[1:] {
			minX, maxX = min(minX, p.x), max(maxX, p.x)
			minY, maxY = min(minY, p.y), max(maxY, p.y)
		}
		if maxX == minX {
			maxX = minX + 1
		}
		if maxY == minY {
			maxY = minY + 1
		}
		px := func(x float64) float64 { return left + (x-minX)/(maxX-minX)*width }
		py := func(y float64) float64 { return top + height - (y-minY)/(maxY-minY)*height }

		if minY < 0 && maxY > 0 {
			r.pdf.SetDrawColor(220, 120, 120)
			r.pdf.Line(left, py(0), left+width, py(0))
		}

		r.pdf.SetDrawColor(52, 152, 219)
		r.pdf.SetLineWidth(0.6)
		for i := 1; i < len(points); i++ {
			r.pdf.Line(px(points[i-1].x), py(points[i-1].y), px(points[i].x), py(points[i].y))
		}
		r.pdf.SetFillColor(52, 152, 219)
		for _, p := range points {
			r.pdf.Circle(px(p.x), py(p.y), 0.7, "F")
		}

		r.pdf.SetFont("Arial", "", 7)
		r.pdf.SetTextColor(90, 90, 90)
		r.pdf.Text(pdfMarginLeft, top+3, compactNumber(maxY))
		r.pdf.Text(pdfMarginLeft, top+height, compactNumber(minY))
		r.pdf.Text(left, top+height+4, compactNumber(minX))
		r.pdf.Text(left+width-10, top+height+4, compactNumber(maxX))
	}

	r.pdf.SetLineWidth(0.2)
	r.pdf.SetY(top + height + 8)
}

// compactNumber abbreviates large axis values (1.2M, 350K).
func compactNumber(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.0fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
