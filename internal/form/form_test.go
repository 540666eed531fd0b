package form

import (
	"testing"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValuesPrefillsDefaults(t *testing.T) {
	v := NewValues(domain.DefaultScenarioInput())
	assert.Equal(t, "25", v.StartAge)
	assert.Equal(t, "60", v.RetireAge)
	assert.Equal(t, "80", v.DeathAge)
	assert.Equal(t, "15000", v.Salary)
	assert.Equal(t, "8", v.Contribution)
	assert.Equal(t, "7.5", v.SalaryGrowth)
	assert.Equal(t, "0", v.Inflation)
	assert.Equal(t, []int{15, 20, 25, 30}, v.ReplacementCosts)
	assert.True(t, v.Submit)
}

func TestValuesRoundTrip(t *testing.T) {
	want := domain.DefaultScenarioInput()
	got, err := NewValues(want).ScenarioInput()
	require.NoError(t, err)

	assert.Equal(t, want.StartAge, got.StartAge)
	assert.Equal(t, want.RetireAge, got.RetireAge)
	assert.Equal(t, want.DeathAge, got.DeathAge)
	assert.True(t, want.InitialSalary.Equal(got.InitialSalary))
	assert.True(t, want.ContributionRate.Equal(got.ContributionRate))
	assert.True(t, want.EmployerContributionRate.Equal(got.EmployerContributionRate))
	assert.True(t, want.SalaryGrowthRate.Equal(got.SalaryGrowthRate))
	require.Len(t, got.ReplacementCostFractions, len(want.ReplacementCostFractions))
	for i := range want.ReplacementCostFractions {
		assert.True(t, want.ReplacementCostFractions[i].Equal(got.ReplacementCostFractions[i]))
	}
}

func TestScenarioInputParsesFormattedFields(t *testing.T) {
	v := NewValues(domain.DefaultScenarioInput())
	v.Salary = "$12,500.50"
	v.Inflation = "2.5%"
	v.ReplacementCosts = []int{40}

	in, err := v.ScenarioInput()
	require.NoError(t, err)
	assert.True(t, in.InitialSalary.Equal(decimal.RequireFromString("12500.50")))
	assert.True(t, in.InflationRate.Equal(decimal.RequireFromString("0.025")))
	require.Len(t, in.ReplacementCostFractions, 1)
	assert.True(t, in.ReplacementCostFractions[0].Equal(decimal.RequireFromString("0.4")))
}

func TestScenarioInputErrors(t *testing.T) {
	tests := map[string]func(v *Values){
		"non numeric age":  func(v *Values) { v.StartAge = "twenty" },
		"retire before":    func(v *Values) { v.RetireAge = "20" },
		"bad salary":       func(v *Values) { v.Salary = "lots" },
		"bad percent":      func(v *Values) { v.Contribution = "abc" },
		"growth too large": func(v *Values) { v.SalaryGrowth = "15" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			v := NewValues(domain.DefaultScenarioInput())
			mutate(v)
			_, err := v.ScenarioInput()
			assert.ErrorIs(t, err, calculation.ErrInvalidScenario)
		})
	}
}

func TestFieldValidators(t *testing.T) {
	assert.NoError(t, validateAge("42"))
	assert.Error(t, validateAge("4.2"))
	assert.NoError(t, validateAmount("1,000"))
	assert.Error(t, validateAmount("-5"))

	check := validatePercent(decimal.NewFromFloat(0.1))
	assert.NoError(t, check("7.5"))
	assert.NoError(t, check("10%"))
	assert.Error(t, check("10.5"))
	assert.Error(t, check("-1"))
	assert.Error(t, check("x"))
}

func TestNewBuildsForm(t *testing.T) {
	assert.NotNil(t, New(NewValues(domain.DefaultScenarioInput())))
}
