package calculation

import (
	"testing"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallInput() domain.ScenarioInput {
	return domain.ScenarioInput{
		StartAge:                 58,
		RetireAge:                60,
		DeathAge:                 62,
		InitialSalary:            decimal.NewFromInt(10000),
		InitialWealth:            decimal.NewFromInt(1000),
		ContributionRate:         decimal.NewFromFloat(0.1),
		EmployerContributionRate: decimal.NewFromFloat(0.05),
		PostRetirementReturnRate: decimal.NewFromFloat(0.06),
	}
}

func TestMergeProjection(t *testing.T) {
	in := smallInput()
	fraction := decimal.NewFromFloat(0.3)
	acc := ProjectAccumulation(in, flatTable(t, 50, 70, 0.06, 0.1))
	dd := ProjectDrawdown(in, fraction)

	mp := MergeProjection(fraction, acc, dd.Records)
	require.Len(t, mp.Rows, len(acc)+len(dd.Records))
	assert.True(t, mp.ReplacementCostFraction.Equal(fraction))

	for i := 1; i < len(mp.Rows); i++ {
		require.LessOrEqual(t, mp.Rows[i-1].Age, mp.Rows[i].Age)
	}

	// accumulation rows: drawdown columns never seen yet
	first := mp.Rows[0]
	assert.Equal(t, domain.PhaseAccumulation, first.Phase)
	assert.Equal(t, 1, first.Month)
	assert.True(t, first.CumulativePresentValue.IsZero())
	assert.True(t, first.DiscountFactor.IsZero())
	assert.True(t, first.NetWealth.Equal(first.CumulativeWealthWithReturn))

	// net wealth at the last working month equals wealth with return
	lastWorking := mp.Rows[len(acc)-1]
	assert.Equal(t, 59, lastWorking.Age)
	assert.True(t, lastWorking.NetWealth.Equal(acc[len(acc)-1].CumulativeWealthWithReturn))

	// drawdown rows carry the final accumulation values forward
	finalWealth := acc[len(acc)-1].CumulativeWealthWithReturn
	for _, row := range mp.Rows[len(acc):] {
		assert.Equal(t, domain.PhaseDrawdown, row.Phase)
		assert.True(t, row.CumulativeWealthWithReturn.Equal(finalWealth))
		assert.True(t, row.MonthlySavings.Equal(acc[len(acc)-1].MonthlySavings))
		assert.True(t, row.NetWealth.Equal(finalWealth.Sub(row.CumulativePresentValue)))
	}
	lastRow := mp.Rows[len(mp.Rows)-1]
	assert.True(t, lastRow.CumulativePresentValue.Equal(dd.TotalPresentValue))
}

func TestMergeProjection_NetWealthSeries(t *testing.T) {
	in := smallInput()
	fraction := decimal.NewFromFloat(0.3)
	acc := ProjectAccumulation(in, nil)
	dd := ProjectDrawdown(in, fraction)

	mp := MergeProjection(fraction, acc, dd.Records)
	require.Len(t, mp.NetWealthSeries, 4)

	ages := []int64{58, 59, 60, 61}
	for i, pt := range mp.NetWealthSeries {
		assert.True(t, pt.X.Equal(decimal.NewFromInt(ages[i])))
	}
	// first row per age
	assert.True(t, mp.NetWealthSeries[0].Y.Equal(mp.Rows[0].NetWealth))
	assert.True(t, mp.NetWealthSeries[1].Y.Equal(mp.Rows[12].NetWealth))
	assert.True(t, mp.NetWealthSeries[2].Y.Equal(mp.Rows[24].NetWealth))
}

func TestMergeProjection_Empty(t *testing.T) {
	mp := MergeProjection(decimal.NewFromFloat(0.2), nil, nil)
	assert.Empty(t, mp.Rows)
	assert.Empty(t, mp.NetWealthSeries)
}
