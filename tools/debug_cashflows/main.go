package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
)

// debug_cashflows prints the IRR cashflow vector of every replacement cost as CSV
// and reports the NPV at the solved rate, which should be close to zero.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_cashflows <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine()
	engine.ExtendedProjection = false
	res, err := engine.RunConfiguration(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	savings := calc.MonthlySavings(res.Accumulation)
	flows := make([][]string, len(res.Scenarios))
	for i, sc := range res.Scenarios {
		for _, cf := range calc.BuildCashflows(savings, sc.Result.TotalPresentValue, res.Input.InitialWealth) {
			flows[i] = append(flows[i], cf.StringFixed(2))
		}
	}

	// Header
	header := "Index"
	for _, sc := range res.Scenarios {
		header += ",CF_" + pct.PercentLabel(sc.Result.ReplacementCostFraction)
	}
	fmt.Println(header)

	for idx := range flows[0] {
		row := fmt.Sprintf("%d", idx)
		for sidx := range flows {
			row += "," + flows[sidx][idx]
		}
		fmt.Println(row)
	}

	fmt.Fprintln(os.Stderr)
	for _, sc := range res.Scenarios {
		cashflows := calc.BuildCashflows(savings, sc.Result.TotalPresentValue, res.Input.InitialWealth)
		monthly := sc.Result.MonthlyIRR.InexactFloat64()
		fmt.Fprintf(os.Stderr, "%s: monthly IRR %.8f, annualized %s, NPV at IRR %.6f\n",
			pct.PercentLabel(sc.Result.ReplacementCostFraction), monthly,
			pct.FormatPercent(sc.Result.AnnualizedIRR, 4), calc.NPV(monthly, cashflows))
	}
}
