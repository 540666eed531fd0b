package calculation

import (
	"fmt"
	"testing"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// flatTable returns a table covering [fromAge, toAge] with a constant return and volatility.
func flatTable(t *testing.T, fromAge, toAge int, annualReturn, volatility float64) *ReturnTable {
	t.Helper()
	var rows []domain.ReturnTableRow
	for age := fromAge; age <= toAge; age++ {
		rows = append(rows, domain.ReturnTableRow{
			Age:              age,
			AnnualReturn:     decimal.NewFromFloat(annualReturn),
			AnnualVolatility: decimal.NewFromFloat(volatility),
		})
	}
	rt, err := NewReturnTable(rows)
	require.NoError(t, err)
	return rt
}

func exampleInput() domain.ScenarioInput {
	in := domain.DefaultScenarioInput()
	in.ReplacementCostFractions = []decimal.Decimal{decimal.NewFromFloat(0.15)}
	return in
}

// recordingLogger captures formatted messages by level.
type recordingLogger struct {
	debug, info, warn, errs []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}
