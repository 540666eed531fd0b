// Package form collects scenario assumptions through an interactive terminal form.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ErrAborted is returned when the user cancels the form.
var ErrAborted = errors.New("form aborted")

// Values holds the raw form fields. Rates are entered as percentages ("7.5" means 7.5%).
type Values struct {
	StartAge  string
	RetireAge string
	DeathAge  string

	Salary string
	Wealth string

	Contribution         string
	EmployerContribution string
	SalaryGrowth         string
	Inflation            string
	PostRetirementReturn string

	ReplacementCosts []int // whole percentages from domain.ReplacementCostMenu
	Submit           bool
}

// NewValues prefills the form from an existing scenario.
func NewValues(in domain.ScenarioInput) *Values {
	v := &Values{
		StartAge:             strconv.Itoa(in.StartAge),
		RetireAge:            strconv.Itoa(in.RetireAge),
		DeathAge:             strconv.Itoa(in.DeathAge),
		Salary:               in.InitialSalary.String(),
		Wealth:               in.InitialWealth.String(),
		Contribution:         percentField(in.ContributionRate),
		EmployerContribution: percentField(in.EmployerContributionRate),
		SalaryGrowth:         percentField(in.SalaryGrowthRate),
		Inflation:            percentField(in.InflationRate),
		PostRetirementReturn: percentField(in.PostRetirementReturnRate),
		Submit:               true,
	}
	for _, f := range in.UniqueReplacementCosts() {
		p := f.Mul(decimal.NewFromInt(100))
		if p.IsInteger() {
			v.ReplacementCosts = append(v.ReplacementCosts, int(p.IntPart()))
		}
	}
	return v
}

func percentField(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).String()
}

// ScenarioInput converts the form fields into a validated scenario.
func (v *Values) ScenarioInput() (domain.ScenarioInput, error) {
	var in domain.ScenarioInput
	var err error

	if in.StartAge, err = parseAge("start age", v.StartAge); err != nil {
		return in, err
	}
	if in.RetireAge, err = parseAge("retire age", v.RetireAge); err != nil {
		return in, err
	}
	if in.DeathAge, err = parseAge("death age", v.DeathAge); err != nil {
		return in, err
	}
	if in.InitialSalary, err = parseAmount("monthly salary", v.Salary); err != nil {
		return in, err
	}
	if in.InitialWealth, err = parseAmount("initial wealth", v.Wealth); err != nil {
		return in, err
	}

	rates := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"contribution rate", v.Contribution, &in.ContributionRate},
		{"employer contribution rate", v.EmployerContribution, &in.EmployerContributionRate},
		{"salary growth rate", v.SalaryGrowth, &in.SalaryGrowthRate},
		{"inflation rate", v.Inflation, &in.InflationRate},
		{"post-retirement return rate", v.PostRetirementReturn, &in.PostRetirementReturnRate},
	}
	for _, r := range rates {
		d, err := pct.ParsePercentage(r.raw)
		if err != nil {
			return in, fmt.Errorf("%w: %s: %v", calculation.ErrInvalidScenario, r.name, err)
		}
		*r.dst = d
	}

	in.ReplacementCostFractions = domain.PercentToFraction(v.ReplacementCosts)

	if err := config.NewInputParser().ValidateScenario(in); err != nil {
		return in, err
	}
	return in, nil
}

func parseAge(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", calculation.ErrInvalidScenario, name, raw)
	}
	return n, nil
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	m, err := pct.NewMoneyFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number, got %q", calculation.ErrInvalidScenario, name, raw)
	}
	return m.Decimal, nil
}

func validateAge(s string) error {
	if _, err := parseAge("age", s); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func validateAmount(s string) error {
	d, err := parseAmount("amount", s)
	if err != nil {
		return errors.New("enter a number")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

func validatePercent(maxFraction decimal.Decimal) func(string) error {
	return func(s string) error {
		d, err := pct.ParsePercentage(s)
		if err != nil {
			return errors.New("enter a percentage")
		}
		if d.IsNegative() || d.GreaterThan(maxFraction) {
			return fmt.Errorf("must be between 0%% and %s", pct.PercentLabel(maxFraction))
		}
		return nil
	}
}

// New builds the input form bound to v.
func New(v *Values) *huh.Form {
	options := make([]huh.Option[int], 0, len(domain.ReplacementCostMenu))
	for _, p := range domain.ReplacementCostMenu {
		options = append(options, huh.NewOption(fmt.Sprintf("%d%%", p), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start age").Value(&v.StartAge).Validate(validateAge),
			huh.NewInput().Title("Retire age").Value(&v.RetireAge).Validate(validateAge),
			huh.NewInput().Title("Death age").Value(&v.DeathAge).Validate(validateAge),
			huh.NewInput().Title("Monthly salary").Value(&v.Salary).Validate(validateAmount),
			huh.NewInput().Title("Initial wealth").Value(&v.Wealth).Validate(validateAmount),
		).Title("Career"),
		huh.NewGroup(
			huh.NewInput().Title("Contribution rate (%)").Value(&v.Contribution).Validate(validatePercent(config.MaxContributionRate)),
			huh.NewInput().Title("Employer contribution rate (%)").Value(&v.EmployerContribution).Validate(validatePercent(config.MaxContributionRate)),
			huh.NewInput().Title("Salary growth rate (%)").Value(&v.SalaryGrowth).Validate(validatePercent(config.MaxGrowthRate)),
			huh.NewInput().Title("Inflation rate (%)").Value(&v.Inflation).Validate(validatePercent(config.MaxGrowthRate)),
			huh.NewInput().Title("Post-retirement return rate (%)").Value(&v.PostRetirementReturn).Validate(validatePercent(config.MaxGrowthRate)),
		).Title("Rates"),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Replacement costs").
				Description("Retirement spending as a share of final salary").
				Options(options...).
				Value(&v.ReplacementCosts),
			huh.NewConfirm().Title("Run projection?").Affirmative("Submit").Negative("Cancel").Value(&v.Submit),
		).Title("Scenarios"),
	)
}

// Run shows the form prefilled with initial and returns the resulting scenario.
func Run(ctx context.Context, initial domain.ScenarioInput) (domain.ScenarioInput, error) {
	v := NewValues(initial)
	if err := New(v).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return domain.ScenarioInput{}, ErrAborted
		}
		return domain.ScenarioInput{}, err
	}
	if !v.Submit {
		return domain.ScenarioInput{}, ErrAborted
	}
	return v.ScenarioInput()
}
