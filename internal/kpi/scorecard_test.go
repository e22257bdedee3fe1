package kpi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorecard(t *testing.T) {
	ds, err := NewDataset([]Row{
		{BusinessUnit: "BU1", Month: January, Perspective: CustomerService, KPI: "CSAT", Value: 80},
		{BusinessUnit: "BU1", Month: February, Perspective: CustomerService, KPI: "CSAT", Value: 88},
		{BusinessUnit: "BU1", Month: January, Perspective: Financial, KPI: "Revenue", Value: 2.5},
		{BusinessUnit: "BU1", Month: February, Perspective: Financial, KPI: "Revenue", Value: 2.875},
		{BusinessUnit: "BU1", Month: February, Perspective: Financial, KPI: "Profit Margin", Value: 12},
		{BusinessUnit: "BU2", Month: February, Perspective: Quality, KPI: "Defect Rate", Value: 3},
	})
	require.NoError(t, err)

	t.Run("groups cards by perspective in dashboard order", func(t *testing.T) {
		sc := ds.Scorecard("BU1", February)
		require.Len(t, sc.Perspectives, 2)
		assert.Equal(t, Financial, sc.Perspectives[0].Perspective)
		assert.Equal(t, CustomerService, sc.Perspectives[1].Perspective)

		fin := sc.Perspectives[0].Cards
		require.Len(t, fin, 2)
		assert.Equal(t, "Revenue", fin[0].KPI)
		assert.Equal(t, 2.875, fin[0].Value)
		require.NotNil(t, fin[0].ChangePct)
		assert.Equal(t, 15.0, *fin[0].ChangePct)

		assert.Equal(t, "Profit Margin", fin[1].KPI)
		require.NotNil(t, fin[1].Previous)
		assert.Equal(t, 0.0, *fin[1].Previous)
		assert.Nil(t, fin[1].ChangePct, "no change against a zero previous value")

		csat := sc.Perspectives[1].Cards[0]
		assert.Equal(t, 10.0, *csat.ChangePct)
	})

	t.Run("january has no previous month", func(t *testing.T) {
		sc := ds.Scorecard("BU1", January)
		for _, p := range sc.Perspectives {
			for _, c := range p.Cards {
				assert.Nil(t, c.Previous)
				assert.Nil(t, c.ChangePct)
			}
		}
	})

	t.Run("unknown business unit has no cards", func(t *testing.T) {
		sc := ds.Scorecard("BU9", February)
		assert.Empty(t, sc.Perspectives)
	})
}

func TestChangePercent(t *testing.T) {
	assert.Nil(t, ChangePercent(0, 5))

	pct := ChangePercent(3, 2)
	require.NotNil(t, pct)
	assert.Equal(t, -33.33, *pct)

	pct = ChangePercent(-4, -2)
	require.NotNil(t, pct)
	assert.Equal(t, 50.0, *pct)

	t.Run("non-finite values have no change", func(t *testing.T) {
		assert.Nil(t, ChangePercent(math.Inf(1), 2))
		assert.Nil(t, ChangePercent(2, math.Inf(-1)))
		assert.Nil(t, ChangePercent(math.NaN(), 2))
		assert.Nil(t, ChangePercent(2, math.NaN()))
	})
}

func TestDummyDatasetIsDeterministic(t *testing.T) {
	a := DummyDataset(42, DefaultChartCatalog())
	b := DummyDataset(42, DefaultChartCatalog())
	assert.Equal(t, a.Rows(), b.Rows())
	assert.Equal(t, []string{"BU1", "BU2", "BU3"}, a.BusinessUnits())
	assert.Equal(t, []Month{January, February, March, April, May, June}, a.Months())

	uptime := a.Filter(Selection{KPI: UptimeKPI, Month: January, BusinessUnit: "BU1"})
	require.Len(t, uptime, 2)
	assert.Equal(t, "ITS", uptime[1].Subdivision)
}
