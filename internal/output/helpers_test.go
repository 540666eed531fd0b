package output

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// buildTestReport runs the engine on a short career with a flat 7%/10% table.
func buildTestReport(t *testing.T, extended bool) *domain.ProjectionReport {
	t.Helper()
	var rows []domain.ReturnTableRow
	for age := 50; age <= 90; age++ {
		rows = append(rows, domain.ReturnTableRow{
			Age:              age,
			AnnualReturn:     decimal.NewFromFloat(0.07),
			AnnualVolatility: decimal.NewFromFloat(0.10),
		})
	}
	table, err := calculation.NewReturnTable(rows)
	require.NoError(t, err)

	input := domain.DefaultScenarioInput()
	input.StartAge, input.RetireAge, input.DeathAge = 55, 60, 65
	input.InitialSalary = decimal.NewFromInt(10000)
	input.ReplacementCostFractions = domain.PercentToFraction([]int{15, 30})

	engine := calculation.NewCalculationEngine()
	engine.ExtendedProjection = extended
	report, err := engine.RunScenario(context.Background(), input, table)
	require.NoError(t, err)
	return report
}

// fixedNow pins report file names for the duration of a test.
func fixedNow(t *testing.T) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })
}
