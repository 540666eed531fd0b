package calculation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Default IRR solver bounds.
const (
	DefaultIRRMaxIterations = 200
	DefaultIRRTolerance     = 1e-10
	irrInitialGuess         = 0.01
	irrScanLow              = -0.99
	irrScanHigh             = 1.0
	irrScanSteps            = 400
)

// IRRSolver finds the periodic internal rate of return of a cashflow vector.
type IRRSolver struct {
	MaxIterations int
	Tolerance     float64
}

// NewIRRSolver creates a solver with the default bounds.
func NewIRRSolver() IRRSolver {
	return IRRSolver{MaxIterations: DefaultIRRMaxIterations, Tolerance: DefaultIRRTolerance}
}

// Solve returns r > −1 such that Σ cf[t]·(1+r)^−t = 0 for t = 0..n−1.
// Newton's method is tried first; bracketed bisection is the fallback.
func (s IRRSolver) Solve(cashflows []decimal.Decimal) (float64, error) {
	if len(cashflows) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 cashflows, got %d", ErrNoConvergence, len(cashflows))
	}

	flows := make([]float64, len(cashflows))
	hasPositive, hasNegative := false, false
	for i, cf := range cashflows {
		flows[i] = cf.InexactFloat64()
		switch {
		case flows[i] > 0:
			hasPositive = true
		case flows[i] < 0:
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, fmt.Errorf("%w: cashflows have no sign change", ErrNoConvergence)
	}
	if err := checkTerminalCoverage(cashflows); err != nil {
		return 0, err
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultIRRMaxIterations
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultIRRTolerance
	}

	if r, ok := newtonIRR(flows, maxIter, tol); ok {
		return r, nil
	}

	lo, hi, ok := bracketIRR(flows)
	if !ok {
		return 0, fmt.Errorf("%w: no rate in (%.2f, %.2f] changes the NPV sign", ErrNoConvergence, irrScanLow, irrScanHigh)
	}
	if r, ok := bisectIRR(flows, lo, hi, maxIter, tol); ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: bisection did not converge within %d iterations", ErrNoConvergence, maxIter)
}

// checkTerminalCoverage rejects contribution-only vectors whose terminal inflow
// does not exceed what was paid in.
func checkTerminalCoverage(cashflows []decimal.Decimal) error {
	last := len(cashflows) - 1
	contributions := decimal.Zero
	for _, cf := range cashflows[:last] {
		if cf.IsPositive() {
			return nil
		}
		contributions = contributions.Sub(cf)
	}
	if cashflows[last].LessThanOrEqual(contributions) {
		return fmt.Errorf("%w: terminal inflow %s does not exceed contributions %s",
			ErrNoConvergence, cashflows[last].StringFixed(2), contributions.StringFixed(2))
	}
	return nil
}

// NPV returns Σ cf[t]·(1+rate)^−t.
func NPV(rate float64, cashflows []decimal.Decimal) float64 {
	flows := make([]float64, len(cashflows))
	for i, cf := range cashflows {
		flows[i] = cf.InexactFloat64()
	}
	v, _ := npvAndDerivative(flows, rate)
	return v
}

// AnnualizeMonthlyRate compounds a monthly rate over twelve months.
func AnnualizeMonthlyRate(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}

func npvAndDerivative(flows []float64, rate float64) (float64, float64) {
	base := 1 + rate
	npv, deriv := 0.0, 0.0
	discount := 1.0
	for t, cf := range flows {
		npv += cf * discount
		deriv -= float64(t) * cf * discount / base
		discount /= base
	}
	return npv, deriv
}

func newtonIRR(flows []float64, maxIter int, tol float64) (float64, bool) {
	r := irrInitialGuess
	for i := 0; i < maxIter; i++ {
		npv, deriv := npvAndDerivative(flows, r)
		if !isFinite(npv) || !isFinite(deriv) || deriv == 0 {
			return 0, false
		}
		next := r - npv/deriv
		if next <= -1 || !isFinite(next) {
			return 0, false
		}
		if math.Abs(next-r) < tol {
			return next, true
		}
		r = next
	}
	return 0, false
}

func bracketIRR(flows []float64) (float64, float64, bool) {
	step := (irrScanHigh - irrScanLow) / irrScanSteps
	lo := irrScanLow
	fLo, _ := npvAndDerivative(flows, lo)
	for i := 1; i <= irrScanSteps; i++ {
		hi := irrScanLow + float64(i)*step
		fHi, _ := npvAndDerivative(flows, hi)
		if isFinite(fLo) && isFinite(fHi) {
			if fLo == 0 {
				return lo, lo, true
			}
			if (fLo < 0) != (fHi < 0) {
				return lo, hi, true
			}
		}
		lo, fLo = hi, fHi
	}
	return 0, 0, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func bisectIRR(flows []float64, lo, hi float64, maxIter int, tol float64) (float64, bool) {
	if lo == hi {
		return lo, true
	}
	fLo, _ := npvAndDerivative(flows, lo)
	for i := 0; i < maxIter; i++ {
		mid := (lo + hi) / 2
		fMid, _ := npvAndDerivative(flows, mid)
		if fMid == 0 || (hi-lo)/2 < tol {
			return mid, true
		}
		if (fMid < 0) == (fLo < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0, false
}
