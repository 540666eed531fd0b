package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLiteFormatter(t *testing.T) {
	report := buildTestReport(t, true)
	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "RETIREMENT CASHFLOW SUMMARY")
	assert.Contains(t, content, "15%")
	assert.Contains(t, content, "30%")
	assert.Contains(t, content, FormatCurrency(report.FinalSalary))
}

func TestConsoleLiteFormatterEmptySelection(t *testing.T) {
	report := buildTestReport(t, true)
	report.Scenarios = nil
	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No replacement costs selected.")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(t, true))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "DETAILED RETIREMENT CASHFLOW ANALYSIS")
	assert.Contains(t, content, "SCENARIO 1: 15% OF FINAL SALARY")
	assert.Contains(t, content, "SCENARIO 2: 30% OF FINAL SALARY")
	assert.Contains(t, content, "WEALTH VS EXPENSES")
	assert.Contains(t, content, "RECOMMENDATION")
}

func TestConsoleVerboseFormatterWithoutProjection(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(t, false))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "WEALTH VS EXPENSES")
}

func TestCSVSummarizerOneRowPerScenario(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t, true))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ReplacementCostPercent", records[0][0])
	assert.Equal(t, "15.00", records[1][0])
	assert.Equal(t, "30.00", records[2][0])
}

func TestCSVDetailedExporterMergedRows(t *testing.T) {
	report := buildTestReport(t, true)
	out, err := CSVDetailedExporter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)

	// header + per fraction: accumulation months + drawdown months
	perFraction := report.Input.WorkingMonths() + report.Input.RetirementMonths()
	require.Len(t, records, 1+2*perFraction)
	assert.Equal(t, "NetWealth", records[0][len(records[0])-1])
	assert.Equal(t, domain.PhaseAccumulation, records[1][1])
	assert.Equal(t, "55", records[1][2])
	assert.Equal(t, domain.PhaseDrawdown, records[perFraction][1])
}

func TestCSVDetailedExporterDrawdownOnly(t *testing.T) {
	report := buildTestReport(t, false)
	out, err := CSVDetailedExporter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+2*report.Input.RetirementMonths())
	for _, rec := range records[1:] {
		assert.Equal(t, domain.PhaseDrawdown, rec[1])
	}
	assert.Equal(t, "1", records[1][3])
}

func TestJSONFormatterIncludesAssumptions(t *testing.T) {
	report := buildTestReport(t, true)
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded domain.ProjectionReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.NotEmpty(t, decoded.Assumptions)
	require.Len(t, decoded.Scenarios, 2)
	assert.True(t, decoded.Scenarios[0].Result.AnnualizedIRR.Equal(report.Scenarios[0].Result.AnnualizedIRR))
	assert.Empty(t, report.Assumptions, "formatter must not mutate the report")
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t, true))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<title>Retirement Cashflow Report</title>")
	assert.Contains(t, content, `id="results"`)
	assert.Contains(t, content, `id="expenseIrrChart"`)
	assert.Contains(t, content, `id="netWealth0"`)
	assert.Contains(t, content, `id="netWealth1"`)
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestReport(t, true))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFFormatterEmptySelection(t *testing.T) {
	report := buildTestReport(t, false)
	report.Scenarios = nil
	out, err := PDFFormatter{}.Format(report)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestWriteFormatted(t *testing.T) {
	fixedNow(t)
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := WriteFormatted(CSVSummarizer{}, buildTestReport(t, false), dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "retirement_report_20250304_050607.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ReplacementCostPercent"))
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("verbose").Name())
	assert.Equal(t, "console-lite", GetFormatterByName("summary").Name())
	assert.Equal(t, "detailed-csv", GetFormatterByName("CSV-Detailed").Name())
	assert.Equal(t, "pdf", GetFormatterByName("pdf-report").Name())
	assert.Nil(t, GetFormatterByName("xml"))

	assert.Equal(t, "pdf", FileExtension("pdf"))
	assert.Equal(t, "txt", FileExtension("console"))
	assert.True(t, IsConsoleFormat("summary"))
	assert.False(t, IsConsoleFormat("json"))

	names := AvailableFormatterNames()
	assert.Contains(t, names, "html")
	assert.Contains(t, names, "detailed-csv")
	assert.Contains(t, AvailableFormatAliases(), "json-pretty")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "custom", F: func(r *domain.ProjectionReport) ([]byte, error) {
		return []byte(r.FinalSalary.StringFixed(0)), nil
	}}
	out, err := f.Format(buildTestReport(t, false))
	require.NoError(t, err)
	assert.Equal(t, "custom", f.Name())
	assert.NotEmpty(t, out)
}
