package kpistore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"scorecard.bizops.dev/internal/ingest"
	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/logging"
	"scorecard.bizops.dev/kpidb"
)

// Manager owns the current KPI dataset. Readers get immutable snapshots;
// writers persist first and then swap in a new snapshot.
type Manager struct {
	config       Config
	KpiDB        *kpidb.Client
	catalog      *kpi.ChartCatalog
	logger       *slog.Logger
	dataset      *kpi.Dataset
	lastUpdated  time.Time
	sourceMod    time.Time
	datasetMutex sync.RWMutex
	writeMutex   sync.Mutex
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// Statistics describes the loaded dataset.
type Statistics struct {
	Source        string    `json:"source"`
	Rows          int       `json:"rows"`
	BusinessUnits []string  `json:"businessUnits"`
	Months        []string  `json:"months"`
	KPIs          int       `json:"kpis"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// InitManager opens the store, imports Source when the store is empty (or
// Reimport is set) and builds the first snapshot from the stored rows.
func InitManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "kpistore"))

	catalog := kpi.DefaultChartCatalog()
	if config.ChartsPath != "" {
		var err error
		catalog, err = kpi.LoadChartCatalogFile(config.ChartsPath)
		if err != nil {
			return nil, fmt.Errorf("error loading chart catalog: %w", err)
		}
	}

	db, err := kpidb.NewClient(kpidb.NewConfig(config.DBPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("error building KPI database: %w", err)
	}

	manager := &Manager{
		config:       config,
		KpiDB:        db,
		catalog:      catalog,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}

	count, err := db.RowCount(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error counting stored rows: %w", err)
	}

	if count == 0 || config.Reimport {
		err = manager.importSource(ctx)
	} else {
		err = manager.loadFromDB(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if config.reloadEnabled() {
		manager.wg.Add(1)
		go manager.reloadPeriodically()
	}

	return manager, nil
}

// Shutdown stops background reloads and closes the store.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		if manager.KpiDB != nil {
			logging.SafeCloseWithLogging(manager.KpiDB, manager.logger, "kpidb")
		}
	})
}

// Dataset returns the current snapshot.
func (manager *Manager) Dataset() *kpi.Dataset {
	manager.datasetMutex.RLock()
	defer manager.datasetMutex.RUnlock()
	return manager.dataset
}

func (manager *Manager) Catalog() *kpi.ChartCatalog {
	return manager.catalog
}

func (manager *Manager) setDataset(ds *kpi.Dataset) {
	manager.datasetMutex.Lock()
	defer manager.datasetMutex.Unlock()
	manager.dataset = ds
	manager.lastUpdated = time.Now()
}

// UpdateValue persists a new value for the row LookupScalar(bu, month, kpi)
// reads and publishes the updated snapshot. It returns false when no row
// matches; nothing is written in that case. NaN and infinities are rejected
// with kpi.ErrInvalidValue.
func (manager *Manager) UpdateValue(ctx context.Context, bu, kpiName string, month kpi.Month, value float64) (bool, error) {
	if !kpi.Finite(value) {
		return false, fmt.Errorf("%w: %v", kpi.ErrInvalidValue, value)
	}

	manager.writeMutex.Lock()
	defer manager.writeMutex.Unlock()

	updated, ok := manager.Dataset().UpdateValue(bu, kpiName, month, value)
	if !ok {
		return false, nil
	}

	stored, err := manager.KpiDB.UpdateValue(ctx, bu, kpiName, month, value)
	if err != nil {
		return false, fmt.Errorf("error persisting value: %w", err)
	}
	if !stored {
		return false, fmt.Errorf("row %s/%s/%s missing from store", bu, month, kpiName)
	}

	manager.setDataset(updated)
	logging.LogOperation(manager.logger, "kpi_value_updated",
		slog.String("business_unit", bu),
		slog.String("month", month.String()),
		slog.String("kpi", kpiName),
		slog.Float64("value", value))
	return true, nil
}

// Reload re-imports Source, replacing stored rows and any updates made since.
func (manager *Manager) Reload(ctx context.Context) error {
	manager.writeMutex.Lock()
	defer manager.writeMutex.Unlock()
	return manager.importSource(ctx)
}

// Updates returns the most recent value updates.
func (manager *Manager) Updates(ctx context.Context, limit int) ([]kpidb.ValueUpdate, error) {
	return manager.KpiDB.ListUpdates(ctx, limit)
}

func (manager *Manager) Statistics() Statistics {
	manager.datasetMutex.RLock()
	ds, lastUpdated := manager.dataset, manager.lastUpdated
	manager.datasetMutex.RUnlock()

	months := []string{}
	for _, m := range ds.Months() {
		months = append(months, m.String())
	}
	source := manager.config.Source
	if manager.config.isDummy() {
		source = DummySource
	}
	return Statistics{
		Source:        source,
		Rows:          ds.Len(),
		BusinessUnits: ds.BusinessUnits(),
		Months:        months,
		KPIs:          len(ds.KPIs("")),
		LastUpdated:   lastUpdated,
	}
}

func (manager *Manager) readSource() ([]kpi.Row, error) {
	if manager.config.isDummy() {
		return kpi.DummyDataset(manager.config.DummySeed, manager.catalog).Rows(), nil
	}
	return ingest.LoadFile(manager.config.Source, ingest.Options{Catalog: manager.catalog, Sheet: manager.config.Sheet})
}

func (manager *Manager) importSource(ctx context.Context) error {
	start := time.Now()

	var modTime time.Time
	if !manager.config.isDummy() {
		info, err := os.Stat(manager.config.Source)
		if err != nil {
			return fmt.Errorf("error reading KPI source: %w", err)
		}
		modTime = info.ModTime()
	}

	rows, err := manager.readSource()
	if err != nil {
		return fmt.Errorf("error loading KPI source: %w", err)
	}
	ds, err := kpi.NewDataset(rows)
	if err != nil {
		return fmt.Errorf("error validating KPI source: %w", err)
	}
	if err := manager.KpiDB.ReplaceRows(ctx, ds.Rows()); err != nil {
		return fmt.Errorf("error storing KPI rows: %w", err)
	}

	manager.setDataset(ds)
	manager.sourceMod = modTime
	logging.LogOperation(manager.logger, "kpi_dataset_imported",
		slog.String("source", manager.Statistics().Source),
		slog.Int("rows", ds.Len()),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// loadFromDB restores the snapshot from stored rows. The source's current
// modification time is taken as already imported so a periodic reload only
// fires when the file changes after startup.
func (manager *Manager) loadFromDB(ctx context.Context) error {
	var modTime time.Time
	if !manager.config.isDummy() {
		info, err := os.Stat(manager.config.Source)
		if err != nil {
			return fmt.Errorf("error reading KPI source: %w", err)
		}
		modTime = info.ModTime()
	}

	rows, err := manager.KpiDB.ListRows(ctx)
	if err != nil {
		return fmt.Errorf("error reading stored rows: %w", err)
	}
	ds, err := kpi.NewDataset(rows)
	if err != nil {
		return fmt.Errorf("error validating stored rows: %w", err)
	}
	manager.setDataset(ds)
	manager.sourceMod = modTime
	logging.LogOperation(manager.logger, "kpi_dataset_restored", slog.Int("rows", ds.Len()))
	return nil
}
