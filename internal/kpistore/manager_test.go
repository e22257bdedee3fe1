package kpistore

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorecard.bizops.dev/internal/appconf"
	"scorecard.bizops.dev/internal/kpi"
)

func dummyConfig() Config {
	return Config{Source: DummySource, DBPath: ":memory:", Env: appconf.Test, DummySeed: 1}
}

func writeCSV(t *testing.T, path, revenue string) {
	t.Helper()
	content := "BU,Month,Perspective,KPI,Value\nBU1,Jan,Financial,Revenue," + revenue + "\nBU1,Feb,Financial,Revenue,3.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestInitManagerWithDummyData(t *testing.T) {
	manager, err := InitManager(context.Background(), dummyConfig(), nil)
	require.NoError(t, err)
	defer manager.Shutdown()

	ds := manager.Dataset()
	assert.Equal(t, kpi.DummyDataset(1, kpi.DefaultChartCatalog()).Rows(), ds.Rows())

	stats := manager.Statistics()
	assert.Equal(t, DummySource, stats.Source)
	assert.Equal(t, ds.Len(), stats.Rows)
	assert.Equal(t, []string{"BU1", "BU2", "BU3"}, stats.BusinessUnits)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, stats.Months)
	assert.Equal(t, len(kpi.DefaultChartCatalog().Entries()), stats.KPIs)
}

func TestManagerUpdateValue(t *testing.T) {
	ctx := context.Background()
	manager, err := InitManager(ctx, dummyConfig(), nil)
	require.NoError(t, err)
	defer manager.Shutdown()

	before := manager.Dataset()

	t.Run("read after write", func(t *testing.T) {
		ok, err := manager.UpdateValue(ctx, "BU1", "Revenue", kpi.February, 7.75)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 7.75, manager.Dataset().LookupScalar("BU1", kpi.February, "Revenue"))
	})

	t.Run("earlier snapshots are not mutated", func(t *testing.T) {
		assert.NotEqual(t, 7.75, before.LookupScalar("BU1", kpi.February, "Revenue"))
	})

	t.Run("no matching row is a no-op", func(t *testing.T) {
		current := manager.Dataset()
		ok, err := manager.UpdateValue(ctx, "BU9", "Revenue", kpi.February, 1)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Same(t, current, manager.Dataset())
	})

	t.Run("update is audited", func(t *testing.T) {
		updates, err := manager.Updates(ctx, 5)
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, 7.75, updates[0].NewValue)
	})
}

func TestManagerRestoresFromDatabase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	source := filepath.Join(dir, "kpis.csv")
	writeCSV(t, source, "3.2")

	config := Config{Source: source, DBPath: filepath.Join(dir, "kpi.db"), Env: appconf.Development}

	first, err := InitManager(ctx, config, nil)
	require.NoError(t, err)
	ok, err := first.UpdateValue(ctx, "BU1", "Revenue", kpi.January, 4.0)
	require.NoError(t, err)
	require.True(t, ok)
	first.Shutdown()

	second, err := InitManager(ctx, config, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, second.Dataset().LookupScalar("BU1", kpi.January, "Revenue"), "stored updates survive a restart")
	second.Shutdown()

	config.Reimport = true
	third, err := InitManager(ctx, config, nil)
	require.NoError(t, err)
	defer third.Shutdown()
	assert.Equal(t, 3.2, third.Dataset().LookupScalar("BU1", kpi.January, "Revenue"), "reimport resets to the source file")
}

func TestManagerRestartKeepsUpdatesWhileSourceUnchanged(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	source := filepath.Join(dir, "kpis.csv")
	writeCSV(t, source, "3.2")

	config := Config{Source: source, DBPath: filepath.Join(dir, "kpi.db"), Env: appconf.Development}

	first, err := InitManager(ctx, config, nil)
	require.NoError(t, err)
	ok, err := first.UpdateValue(ctx, "BU1", "Revenue", kpi.January, 9.9)
	require.NoError(t, err)
	require.True(t, ok)
	first.Shutdown()

	config.ReloadInterval = 10 * time.Millisecond
	second, err := InitManager(ctx, config, nil)
	require.NoError(t, err)
	defer second.Shutdown()

	// several reload ticks against an untouched file
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 9.9, second.Dataset().LookupScalar("BU1", kpi.January, "Revenue"))

	writeCSV(t, source, "5.5")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(source, future, future))

	require.Eventually(t, func() bool {
		return second.Dataset().LookupScalar("BU1", kpi.January, "Revenue") == 5.5
	}, 2*time.Second, 10*time.Millisecond, "a changed source is still reloaded")
}

func TestManagerRejectsNonFiniteValues(t *testing.T) {
	ctx := context.Background()

	t.Run("source with an infinite value fails to import", func(t *testing.T) {
		source := filepath.Join(t.TempDir(), "kpis.csv")
		writeCSV(t, source, "Inf")

		config := dummyConfig()
		config.Source = source
		_, err := InitManager(ctx, config, nil)
		assert.ErrorIs(t, err, kpi.ErrInvalidValue)
	})

	t.Run("update with a non-finite value", func(t *testing.T) {
		manager, err := InitManager(ctx, dummyConfig(), nil)
		require.NoError(t, err)
		defer manager.Shutdown()

		before := manager.Dataset()
		for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			ok, err := manager.UpdateValue(ctx, "BU1", "Revenue", kpi.February, v)
			assert.ErrorIs(t, err, kpi.ErrInvalidValue)
			assert.False(t, ok)
		}
		assert.Same(t, before, manager.Dataset())

		updates, err := manager.Updates(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, updates)

		assert.NotPanics(t, func() { manager.Dataset().Scorecard("BU1", kpi.February) })
	})
}

func TestInitManagerErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing source", func(t *testing.T) {
		config := dummyConfig()
		config.Source = filepath.Join(t.TempDir(), "missing.csv")
		_, err := InitManager(ctx, config, nil)
		assert.Error(t, err)
	})

	t.Run("duplicate rows are rejected at ingestion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dupes.csv")
		require.NoError(t, os.WriteFile(path, []byte("BU,Month,KPI,Value\nBU1,Jan,Revenue,1\nBU1,Jan,Revenue,2\n"), 0o600))

		config := dummyConfig()
		config.Source = path
		_, err := InitManager(ctx, config, nil)
		assert.ErrorIs(t, err, kpi.ErrDuplicateRow)
	})

	t.Run("invalid chart catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "charts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("kpis:\n  - {name: Revenue, perspective: Financial, kind: radar}\n"), 0o600))

		config := dummyConfig()
		config.ChartsPath = path
		_, err := InitManager(ctx, config, nil)
		assert.ErrorIs(t, err, kpi.ErrInvalidChartKind)
	})
}

func TestManagerReloadsChangedSource(t *testing.T) {
	ctx := context.Background()
	source := filepath.Join(t.TempDir(), "kpis.csv")
	writeCSV(t, source, "3.2")

	config := Config{Source: source, DBPath: ":memory:", Env: appconf.Test, ReloadInterval: 10 * time.Millisecond}
	manager, err := InitManager(ctx, config, nil)
	require.NoError(t, err)
	defer manager.Shutdown()

	writeCSV(t, source, "5.5")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(source, future, future))

	require.Eventually(t, func() bool {
		return manager.Dataset().LookupScalar("BU1", kpi.January, "Revenue") == 5.5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManagerConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()
	manager, err := InitManager(ctx, dummyConfig(), nil)
	require.NoError(t, err)
	defer manager.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, err := manager.UpdateValue(ctx, "BU2", "CSAT", kpi.March, float64(i))
				assert.NoError(t, err)
				return
			}
			_ = manager.Dataset().LookupSeries("BU2", "CSAT")
			_ = manager.Statistics()
		}(i)
	}
	wg.Wait()

	v := manager.Dataset().LookupScalar("BU2", kpi.March, "CSAT")
	assert.Contains(t, []float64{0, 2, 4, 6}, v)
}

func TestShutdownIsIdempotent(t *testing.T) {
	manager, err := InitManager(context.Background(), dummyConfig(), nil)
	require.NoError(t, err)
	manager.Shutdown()
	manager.Shutdown()
}
