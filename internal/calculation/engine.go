package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs accumulation, drawdown and IRR for every selected replacement cost
type CalculationEngine struct {
	// ExtendedProjection enables the merged wealth-vs-expense projection per scenario.
	ExtendedProjection bool
	Solver             IRRSolver
	Logger             Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		ExtendedProjection: true,
		Solver:             NewIRRSolver(),
		Logger:             NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunConfiguration loads the return table named by the configuration and runs its scenario.
func (ce *CalculationEngine) RunConfiguration(ctx context.Context, cfg *domain.Configuration) (*domain.ProjectionReport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration is nil", ErrInvalidScenario)
	}
	table, err := LoadReturnTable(cfg.ReturnTable)
	if err != nil {
		return nil, err
	}

	engine := *ce
	engine.ExtendedProjection = ce.ExtendedProjection && cfg.Extended()
	return engine.RunScenario(ctx, cfg.Scenario, table)
}

// RunScenario calculates a complete projection for one set of assumptions
func (ce *CalculationEngine) RunScenario(ctx context.Context, input domain.ScenarioInput, table *ReturnTable) (*domain.ProjectionReport, error) {
	if err := ValidateScenario(input); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fmt.Errorf("%w: return table is nil", ErrEmptyRange)
	}

	meanReturn, meanVol, err := table.AverageFrom(input.StartAge)
	if err != nil {
		return nil, fmt.Errorf("failed to average returns from age %d: %w", input.StartAge, err)
	}
	ce.logger().Infof("Average portfolio return from age %d: %s, volatility %s",
		input.StartAge, meanReturn.StringFixed(4), meanVol.StringFixed(4))

	for age := input.StartAge; age < input.RetireAge; age++ {
		if _, ok := table.Lookup(age); !ok {
			ce.logger().Debugf("No return table row for age %d, using 0%% monthly return", age)
		}
	}

	accumulation := ProjectAccumulation(input, table)
	savings := MonthlySavings(accumulation)

	report := &domain.ProjectionReport{
		Input:          input,
		MeanReturn:     meanReturn,
		MeanVolatility: meanVol,
		FinalSalary:    FinalSalary(input),
		Accumulation:   accumulation,
		Scenarios:      []domain.ScenarioOutcome{},
	}

	for _, fraction := range input.UniqueReplacementCosts() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("projection cancelled: %w", err)
		}

		outcome, err := ce.runFraction(input, fraction, accumulation, savings, meanReturn, meanVol)
		if err != nil {
			return nil, fmt.Errorf("replacement cost %s: %w", pct.PercentLabel(fraction), err)
		}
		report.Scenarios = append(report.Scenarios, outcome)
	}

	return report, nil
}

func (ce *CalculationEngine) runFraction(input domain.ScenarioInput, fraction decimal.Decimal, accumulation []domain.MonthlyAccumulationRecord, savings []decimal.Decimal, meanReturn, meanVol decimal.Decimal) (domain.ScenarioOutcome, error) {
	drawdown := ProjectDrawdown(input, fraction)

	cashflows := BuildCashflows(savings, drawdown.TotalPresentValue, input.InitialWealth)
	monthly, err := ce.Solver.Solve(cashflows)
	if err != nil {
		return domain.ScenarioOutcome{}, fmt.Errorf("IRR calculation failed: %w", err)
	}
	annual := AnnualizeMonthlyRate(monthly)
	annualIRR := decimal.NewFromFloat(annual)

	probability, err := BreakevenProbability(meanReturn, meanVol, annualIRR)
	if err != nil {
		return domain.ScenarioOutcome{}, err
	}

	ce.logger().Debugf("Replacement %s: expense %s, PV %s, monthly IRR %.6f, annual IRR %.6f",
		pct.PercentLabel(fraction), drawdown.BaseMonthlyExpense.StringFixed(2), drawdown.TotalPresentValue.StringFixed(2), monthly, annual)

	outcome := domain.ScenarioOutcome{
		Result: domain.ScenarioResult{
			ReplacementCostFraction:  fraction,
			FinalSalary:              drawdown.FinalSalary,
			RetirementMonthlyExpense: drawdown.BaseMonthlyExpense,
			MonthlyIRR:               decimal.NewFromFloat(monthly),
			AnnualizedIRR:            annualIRR,
			TotalPresentValue:        drawdown.TotalPresentValue,
			ReturnShortfall:          ReturnShortfall(meanReturn, annualIRR),
			BreakevenProbability:     probability,
		},
		Drawdown: drawdown.Records,
	}
	if ce.ExtendedProjection {
		outcome.Projection = MergeProjection(fraction, accumulation, drawdown.Records)
	}
	return outcome, nil
}

// BuildCashflows returns the IRR cashflow vector: each month's savings as an
// outflow followed by one terminal inflow of total present value plus initial wealth.
func BuildCashflows(savings []decimal.Decimal, totalPresentValue, initialWealth decimal.Decimal) []decimal.Decimal {
	cashflows := make([]decimal.Decimal, 0, len(savings)+1)
	for _, s := range savings {
		cashflows = append(cashflows, s.Neg())
	}
	return append(cashflows, totalPresentValue.Add(initialWealth))
}

// ValidateScenario checks age ordering and sign constraints on the assumptions.
func ValidateScenario(input domain.ScenarioInput) error {
	if input.StartAge < 0 {
		return fmt.Errorf("%w: start age must be non-negative, got %d", ErrInvalidScenario, input.StartAge)
	}
	if input.RetireAge <= input.StartAge {
		return fmt.Errorf("%w: retire age (%d) must be greater than start age (%d)", ErrInvalidScenario, input.RetireAge, input.StartAge)
	}
	if input.DeathAge <= input.RetireAge {
		return fmt.Errorf("%w: death age (%d) must be greater than retire age (%d)", ErrInvalidScenario, input.DeathAge, input.RetireAge)
	}

	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"initial salary", input.InitialSalary},
		{"initial wealth", input.InitialWealth},
		{"contribution rate", input.ContributionRate},
		{"employer contribution rate", input.EmployerContributionRate},
		{"salary growth rate", input.SalaryGrowthRate},
		{"inflation rate", input.InflationRate},
		{"post-retirement return rate", input.PostRetirementReturnRate},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must be non-negative, got %s", ErrInvalidScenario, f.name, f.value.String())
		}
	}

	for i, fraction := range input.ReplacementCostFractions {
		if !fraction.IsPositive() {
			return fmt.Errorf("%w: replacement cost fraction %d must be positive, got %s", ErrInvalidScenario, i, fraction.String())
		}
	}
	return nil
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}
