package domain

import (
	"github.com/shopspring/decimal"
)

// ReturnTableRow is the expected portfolio return and volatility for one age.
type ReturnTableRow struct {
	Age              int             `json:"age"`
	AnnualReturn     decimal.Decimal `json:"annual_return"`
	AnnualVolatility decimal.Decimal `json:"annual_volatility"`
}

// MonthlyAccumulationRecord represents one working month
type MonthlyAccumulationRecord struct {
	MonthIndex                 int             `json:"month_index"`
	Age                        int             `json:"age"`
	MonthlySavings             decimal.Decimal `json:"monthly_savings"`
	CumulativeWealthNoReturn   decimal.Decimal `json:"cumulative_wealth_no_return"`
	CumulativeWealthWithReturn decimal.Decimal `json:"cumulative_wealth_with_return"`
}

// MonthlyDrawdownRecord represents one retirement month for a single replacement cost
type MonthlyDrawdownRecord struct {
	MonthIndex             int             `json:"month_index"`
	Age                    int             `json:"age"`
	MonthlyExpense         decimal.Decimal `json:"monthly_expense"`
	CumulativeExpense      decimal.Decimal `json:"cumulative_expense"`
	DiscountFactor         decimal.Decimal `json:"discount_factor"`
	PresentValueCashflow   decimal.Decimal `json:"present_value_cashflow"`
	CumulativePresentValue decimal.Decimal `json:"cumulative_present_value"`
}

// ScenarioResult summarizes one replacement cost scenario
type ScenarioResult struct {
	ReplacementCostFraction  decimal.Decimal `json:"replacement_cost_fraction"`
	FinalSalary              decimal.Decimal `json:"final_salary"`
	RetirementMonthlyExpense decimal.Decimal `json:"retirement_monthly_expense"`
	MonthlyIRR               decimal.Decimal `json:"monthly_irr"`
	AnnualizedIRR            decimal.Decimal `json:"annualized_irr"`
	TotalPresentValue        decimal.Decimal `json:"total_present_value"`

	// ReturnShortfall is the mean table return minus the annualized IRR.
	ReturnShortfall decimal.Decimal `json:"return_shortfall"`
	// BreakevenProbability is a normal-CDF heuristic in [0, 1].
	BreakevenProbability decimal.Decimal `json:"breakeven_probability"`
}

// MergedProjectionRow is one row of the age-aligned accumulation/drawdown join.
// Columns not yet seen for the row's phase are forward filled or zero.
type MergedProjectionRow struct {
	Age                        int             `json:"age"`
	Phase                      string          `json:"phase"`
	Month                      int             `json:"month"` // 1-based within its phase
	MonthlySavings             decimal.Decimal `json:"monthly_savings"`
	CumulativeWealthNoReturn   decimal.Decimal `json:"cumulative_wealth_no_return"`
	CumulativeWealthWithReturn decimal.Decimal `json:"cumulative_wealth_with_return"`
	MonthlyExpense             decimal.Decimal `json:"monthly_expense"`
	CumulativeExpense          decimal.Decimal `json:"cumulative_expense"`
	DiscountFactor             decimal.Decimal `json:"discount_factor"`
	PresentValueCashflow       decimal.Decimal `json:"present_value_cashflow"`
	CumulativePresentValue     decimal.Decimal `json:"cumulative_present_value"`
	NetWealth                  decimal.Decimal `json:"net_wealth"`
}

// Projection phases.
const (
	PhaseAccumulation = "accumulation"
	PhaseDrawdown     = "drawdown"
)

// ChartPoint is a single (x, y) pair of a rendered series.
type ChartPoint struct {
	X decimal.Decimal `json:"x"`
	Y decimal.Decimal `json:"y"`
}

// MergedProjection is the wealth-vs-expense projection for one replacement cost.
type MergedProjection struct {
	ReplacementCostFraction decimal.Decimal       `json:"replacement_cost_fraction"`
	Rows                    []MergedProjectionRow `json:"rows"`
	// NetWealthSeries holds age vs net wealth, first row per age.
	NetWealthSeries []ChartPoint `json:"net_wealth_series"`
}

// ScenarioOutcome bundles everything computed for one replacement cost.
type ScenarioOutcome struct {
	Result     ScenarioResult          `json:"result"`
	Drawdown   []MonthlyDrawdownRecord `json:"drawdown"`
	Projection *MergedProjection       `json:"projection,omitempty"`
}

// ProjectionReport is the complete output of one calculation run.
type ProjectionReport struct {
	Input          ScenarioInput               `json:"input"`
	MeanReturn     decimal.Decimal             `json:"mean_return"`
	MeanVolatility decimal.Decimal             `json:"mean_volatility"`
	FinalSalary    decimal.Decimal             `json:"final_salary"`
	Accumulation   []MonthlyAccumulationRecord `json:"accumulation"`
	Scenarios      []ScenarioOutcome           `json:"scenarios"`
	Assumptions    []string                    `json:"assumptions"`
}

// Results returns the scenario results in selection order.
func (r *ProjectionReport) Results() []ScenarioResult {
	results := make([]ScenarioResult, len(r.Scenarios))
	for i, sc := range r.Scenarios {
		results[i] = sc.Result
	}
	return results
}

// Projection returns the merged projection for a replacement cost fraction.
func (r *ProjectionReport) Projection(fraction decimal.Decimal) (*MergedProjection, bool) {
	for _, sc := range r.Scenarios {
		if sc.Result.ReplacementCostFraction.Equal(fraction) && sc.Projection != nil {
			return sc.Projection, true
		}
	}
	return nil, false
}

// ExpenseVsIRR returns retirement monthly expense (x) against annualized IRR (y) across fractions.
func (r *ProjectionReport) ExpenseVsIRR() []ChartPoint {
	points := make([]ChartPoint, len(r.Scenarios))
	for i, sc := range r.Scenarios {
		points[i] = ChartPoint{X: sc.Result.RetirementMonthlyExpense, Y: sc.Result.AnnualizedIRR}
	}
	return points
}

// TotalContributions sums all monthly savings of the accumulation phase.
func (r *ProjectionReport) TotalContributions() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range r.Accumulation {
		total = total.Add(rec.MonthlySavings)
	}
	return total
}

// FinalWealth returns the last wealth-with-return value before retirement.
func (r *ProjectionReport) FinalWealth() decimal.Decimal {
	if len(r.Accumulation) == 0 {
		return r.Input.InitialWealth
	}
	return r.Accumulation[len(r.Accumulation)-1].CumulativeWealthWithReturn
}
