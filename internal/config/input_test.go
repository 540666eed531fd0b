package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `return_table: returns.csv
extended_projection: false
scenario:
  start_age: 30
  retire_age: 65
  death_age: 85
  initial_salary: 20000
  initial_wealth: 100000
  contribution_rate: 0.1
  employer_contribution_rate: 0.05
  salary_growth_rate: 0.04
  inflation_rate: 0.02
  post_retirement_return_rate: 0.03
  replacement_cost_fractions: [0.2, "0.35"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", validConfig)

	cfg, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "returns.csv"), cfg.ReturnTable)
	assert.False(t, cfg.Extended())

	s := cfg.Scenario
	assert.Equal(t, 30, s.StartAge)
	assert.Equal(t, 65, s.RetireAge)
	assert.Equal(t, 85, s.DeathAge)
	assert.True(t, s.InitialSalary.Equal(decimal.NewFromInt(20000)))
	assert.True(t, s.InitialWealth.Equal(decimal.NewFromInt(100000)))
	assert.True(t, s.TotalContributionRate().Equal(decimal.NewFromFloat(0.15)))
	require.Len(t, s.ReplacementCostFractions, 2)
	assert.True(t, s.ReplacementCostFractions[1].Equal(decimal.NewFromFloat(0.35)))
}

func TestLoadFromFile_AbsoluteReturnTableKept(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "returns.csv")
	path := writeFile(t, dir, "config.yaml", "return_table: "+abs+"\nscenario:\n  start_age: 25\n  retire_age: 60\n  death_age: 80\n")

	cfg, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.ReturnTable)
	assert.True(t, cfg.Extended(), "extended projection defaults on")
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "scenario: [unclosed\n")
	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_InvalidScenario(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "scenario:\n  start_age: 60\n  retire_age: 60\n  death_age: 80\n")
	_, err := NewInputParser().LoadFromFile(path)
	assert.ErrorIs(t, err, calculation.ErrInvalidScenario)
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(parser.CreateExampleConfiguration()))
}

func TestValidateConfiguration_Nil(t *testing.T) {
	assert.ErrorIs(t, NewInputParser().ValidateConfiguration(nil), calculation.ErrInvalidScenario)
}

func TestValidateScenario_FormBounds(t *testing.T) {
	cases := map[string]func(*domain.ScenarioInput){
		"contribution":          func(s *domain.ScenarioInput) { s.ContributionRate = decimal.NewFromFloat(0.51) },
		"employer contribution": func(s *domain.ScenarioInput) { s.EmployerContributionRate = decimal.NewFromFloat(0.6) },
		"salary growth":         func(s *domain.ScenarioInput) { s.SalaryGrowthRate = decimal.NewFromFloat(0.11) },
		"inflation":             func(s *domain.ScenarioInput) { s.InflationRate = decimal.NewFromFloat(0.2) },
		"post return":           func(s *domain.ScenarioInput) { s.PostRetirementReturnRate = decimal.NewFromFloat(0.15) },
		"replacement":           func(s *domain.ScenarioInput) { s.ReplacementCostFractions = []decimal.Decimal{decimal.NewFromFloat(1.5)} },
		"age order":             func(s *domain.ScenarioInput) { s.DeathAge = 50 },
	}
	parser := NewInputParser()
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := domain.DefaultScenarioInput()
			mutate(&s)
			assert.ErrorIs(t, parser.ValidateScenario(s), calculation.ErrInvalidScenario)
		})
	}

	edge := domain.DefaultScenarioInput()
	edge.ContributionRate = decimal.NewFromFloat(0.5)
	edge.InflationRate = decimal.NewFromFloat(0.1)
	assert.NoError(t, parser.ValidateScenario(edge))
}

func TestCreateExampleConfiguration(t *testing.T) {
	cfg := NewInputParser().CreateExampleConfiguration()
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultReturnTable, cfg.ReturnTable)
	assert.True(t, cfg.Extended())
	assert.Equal(t, 25, cfg.Scenario.StartAge)
	assert.Equal(t, 60, cfg.Scenario.RetireAge)
	assert.Equal(t, 80, cfg.Scenario.DeathAge)
	assert.Len(t, cfg.Scenario.ReplacementCostFractions, 4)
}
