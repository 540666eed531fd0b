package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioInput holds every assumption needed for one projection run.
// It is passed by value; engines never mutate it.
type ScenarioInput struct {
	StartAge  int `yaml:"start_age" json:"start_age"`
	RetireAge int `yaml:"retire_age" json:"retire_age"`
	DeathAge  int `yaml:"death_age" json:"death_age"`

	InitialSalary decimal.Decimal `yaml:"initial_salary" json:"initial_salary"` // monthly
	InitialWealth decimal.Decimal `yaml:"initial_wealth" json:"initial_wealth"`

	ContributionRate         decimal.Decimal `yaml:"contribution_rate" json:"contribution_rate"`
	EmployerContributionRate decimal.Decimal `yaml:"employer_contribution_rate" json:"employer_contribution_rate"`
	SalaryGrowthRate         decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	InflationRate            decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	PostRetirementReturnRate decimal.Decimal `yaml:"post_retirement_return_rate" json:"post_retirement_return_rate"`

	// Replacement costs as fractions of final salary, in selection order.
	ReplacementCostFractions []decimal.Decimal `yaml:"replacement_cost_fractions" json:"replacement_cost_fractions"`
}

// WorkingYears returns the number of years between start and retirement.
func (s ScenarioInput) WorkingYears() int { return s.RetireAge - s.StartAge }

// RetirementYears returns the number of years between retirement and death.
func (s ScenarioInput) RetirementYears() int { return s.DeathAge - s.RetireAge }

// WorkingMonths is the length of the accumulation sequence.
func (s ScenarioInput) WorkingMonths() int { return s.WorkingYears() * 12 }

// RetirementMonths is the length of each drawdown sequence.
func (s ScenarioInput) RetirementMonths() int { return s.RetirementYears() * 12 }

// TotalContributionRate is the employee plus employer contribution rate.
func (s ScenarioInput) TotalContributionRate() decimal.Decimal {
	return s.ContributionRate.Add(s.EmployerContributionRate)
}

// UniqueReplacementCosts returns the selected fractions with duplicates removed,
// keeping the first occurrence of each value.
func (s ScenarioInput) UniqueReplacementCosts() []decimal.Decimal {
	unique := make([]decimal.Decimal, 0, len(s.ReplacementCostFractions))
	for _, f := range s.ReplacementCostFractions {
		seen := false
		for _, u := range unique {
			if u.Equal(f) {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, f)
		}
	}
	return unique
}

// Configuration is the on-disk scenario configuration.
type Configuration struct {
	ReturnTable        string        `yaml:"return_table" json:"return_table"`
	ExtendedProjection *bool         `yaml:"extended_projection,omitempty" json:"extended_projection,omitempty"`
	Scenario           ScenarioInput `yaml:"scenario" json:"scenario"`
}

// Extended reports whether the merged wealth-vs-expense projection is requested.
// It defaults to true when the field is absent.
func (c *Configuration) Extended() bool {
	if c.ExtendedProjection == nil {
		return true
	}
	return *c.ExtendedProjection
}

// ReplacementCostMenu lists the replacement cost percentages offered to the user.
var ReplacementCostMenu = []int{15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 70, 80}

// DefaultReplacementCosts is the initial selection from ReplacementCostMenu.
var DefaultReplacementCosts = []int{15, 20, 25, 30}

// PercentToFraction converts whole-number percentages to fractions.
func PercentToFraction(percents []int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(percents))
	for i, p := range percents {
		out[i] = decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(100))
	}
	return out
}

// DefaultScenarioInput returns the assumptions the calculator starts with.
func DefaultScenarioInput() ScenarioInput {
	return ScenarioInput{
		StartAge:                 25,
		RetireAge:                60,
		DeathAge:                 80,
		InitialSalary:            decimal.NewFromInt(15000),
		InitialWealth:            decimal.Zero,
		ContributionRate:         decimal.NewFromFloat(0.08),
		EmployerContributionRate: decimal.NewFromFloat(0.08),
		SalaryGrowthRate:         decimal.NewFromFloat(0.075),
		InflationRate:            decimal.Zero,
		PostRetirementReturnRate: decimal.Zero,
		ReplacementCostFractions: PercentToFraction(DefaultReplacementCosts),
	}
}
