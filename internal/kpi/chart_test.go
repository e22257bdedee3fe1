package kpi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultChartCatalog(t *testing.T) {
	c := DefaultChartCatalog()

	assert.Equal(t, ChartBar, c.Chart("Revenue").Kind)
	assert.Equal(t, ChartGauge, c.Chart(UptimeKPI).Kind)
	require.NotNil(t, c.Chart(UptimeKPI).Target)
	assert.Equal(t, 99.9, *c.Chart(UptimeKPI).Target)
	assert.Equal(t, ChartLine, c.Chart("Something Else").Kind, "unknown KPIs use the default chart")

	p, ok := c.PerspectiveOf("CSAT")
	assert.True(t, ok)
	assert.Equal(t, CustomerService, p)

	for _, e := range c.Entries() {
		assert.True(t, e.Perspective.Valid(), e.KPI)
	}
}

func TestLoadChartCatalog(t *testing.T) {
	t.Run("decodes kpis and default", func(t *testing.T) {
		c, err := LoadChartCatalog(strings.NewReader(`
default:
  kind: area
kpis:
  - name: Revenue
    perspective: Financial
    kind: bar
    unit: $M
    target: 3.5
  - name: Defect Rate
    perspective: quality
    kind: LINE
    higherIsBetter: false
`))
		require.NoError(t, err)

		assert.Equal(t, ChartArea, c.Default().Kind)
		rev := c.Chart("Revenue")
		assert.Equal(t, ChartBar, rev.Kind)
		assert.Equal(t, "$M", rev.Unit)
		assert.True(t, rev.HigherIsBetter)
		require.NotNil(t, rev.Target)
		assert.Equal(t, 3.5, *rev.Target)

		defects := c.Chart("Defect Rate")
		assert.Equal(t, ChartLine, defects.Kind)
		assert.False(t, defects.HigherIsBetter)
	})

	t.Run("empty document yields an empty catalog", func(t *testing.T) {
		c, err := LoadChartCatalog(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, c.Entries())
		assert.Equal(t, ChartLine, c.Default().Kind)
	})

	t.Run("rejects unknown chart kinds at load time", func(t *testing.T) {
		_, err := LoadChartCatalog(strings.NewReader(`
kpis:
  - {name: Revenue, perspective: Financial, kind: donut}
`))
		assert.ErrorIs(t, err, ErrInvalidChartKind)
	})

	t.Run("rejects gauges without a target", func(t *testing.T) {
		_, err := LoadChartCatalog(strings.NewReader(`
kpis:
  - {name: CSAT, perspective: Customer, kind: gauge}
`))
		assert.ErrorIs(t, err, ErrInvalidChartKind)
	})

	t.Run("rejects unknown perspectives", func(t *testing.T) {
		_, err := LoadChartCatalog(strings.NewReader(`
kpis:
  - {name: Revenue, perspective: Growth, kind: bar}
`))
		assert.ErrorIs(t, err, ErrUnknownPerspective)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := LoadChartCatalog(strings.NewReader(`
kpis:
  - {name: Revenue, perspective: Financial, kind: bar, colour: red}
`))
		assert.Error(t, err)
	})

	t.Run("rejects duplicate kpis", func(t *testing.T) {
		_, err := LoadChartCatalog(strings.NewReader(`
kpis:
  - {name: Revenue, perspective: Financial, kind: bar}
  - {name: Revenue, perspective: Financial, kind: line}
`))
		assert.Error(t, err)
	})
}

func TestLoadChartCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kpis:\n  - {name: NPS, perspective: Customer, kind: line}\n"), 0o600))

	c, err := LoadChartCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, ChartLine, c.Chart("NPS").Kind)

	_, err = LoadChartCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
