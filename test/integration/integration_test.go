package integration

import (
	"context"
	"testing"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleConfig = "../testdata/example_config.yaml"

func runExample(t *testing.T) (*domain.Configuration, *domain.ProjectionReport) {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleConfig)
	require.NoError(t, err)

	report, err := calculation.NewCalculationEngine().RunConfiguration(context.Background(), cfg)
	require.NoError(t, err)
	return cfg, report
}

func TestEndToEndCalculation(t *testing.T) {
	cfg, report := runExample(t)

	assert.Len(t, report.Accumulation, cfg.Scenario.WorkingMonths())
	require.Len(t, report.Scenarios, 4)

	finalSalary := calculation.FinalSalary(cfg.Scenario)
	assert.True(t, report.FinalSalary.Equal(finalSalary))

	for _, sc := range report.Scenarios {
		res := sc.Result
		assert.Len(t, sc.Drawdown, cfg.Scenario.RetirementMonths())
		require.NotNil(t, sc.Projection)
		assert.Len(t, sc.Projection.Rows, cfg.Scenario.WorkingMonths()+cfg.Scenario.RetirementMonths())

		// zero inflation and discount: PV is expense times months
		wantPV := finalSalary.Mul(res.ReplacementCostFraction).Mul(decimal.NewFromInt(int64(cfg.Scenario.RetirementMonths())))
		assert.True(t, res.TotalPresentValue.Sub(wantPV).Abs().LessThan(decimal.NewFromFloat(1e-6)), "PV %s want %s", res.TotalPresentValue, wantPV)

		assert.True(t, res.BreakevenProbability.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, res.BreakevenProbability.LessThanOrEqual(decimal.NewFromInt(1)))
	}
}

func TestRequiredReturnRisesWithReplacementCost(t *testing.T) {
	_, report := runExample(t)
	for i := 1; i < len(report.Scenarios); i++ {
		prev, cur := report.Scenarios[i-1].Result, report.Scenarios[i].Result
		assert.True(t, cur.AnnualizedIRR.GreaterThan(prev.AnnualizedIRR),
			"IRR at %s should exceed IRR at %s", cur.ReplacementCostFraction, prev.ReplacementCostFraction)
		assert.True(t, cur.BreakevenProbability.LessThan(prev.BreakevenProbability))
	}
}

func TestIRRZeroesNPV(t *testing.T) {
	_, report := runExample(t)
	savings := calculation.MonthlySavings(report.Accumulation)

	for _, sc := range report.Scenarios {
		flows := calculation.BuildCashflows(savings, sc.Result.TotalPresentValue, report.Input.InitialWealth)
		monthly := sc.Result.MonthlyIRR.InexactFloat64()
		npv := calculation.NPV(monthly, flows)
		scale := flows[len(flows)-1].InexactFloat64()
		assert.InDelta(t, 0, npv/scale, 1e-6, "NPV at IRR for %s", sc.Result.ReplacementCostFraction)
	}
}

func TestNetWealthEndsAtFinalGap(t *testing.T) {
	_, report := runExample(t)
	for _, sc := range report.Scenarios {
		rows := sc.Projection.Rows
		last := rows[len(rows)-1]
		want := report.FinalWealth().Sub(sc.Result.TotalPresentValue)
		assert.True(t, last.NetWealth.Equal(want), "net wealth %s want %s", last.NetWealth, want)
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Scenario.DeathAge = cfg.Scenario.RetireAge
	assert.ErrorIs(t, parser.ValidateConfiguration(cfg), calculation.ErrInvalidScenario)
}
