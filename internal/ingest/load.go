package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scorecard.bizops.dev/internal/kpi"
)

// LoadFile reads a .csv or .xlsx file into rows.
func LoadFile(path string, opts Options) (_ []kpi.Row, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading KPI file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if ext == ".xlsx" {
		return ReadXLSX(f, opts)
	}
	return ReadCSV(f, opts)
}

// LoadDataset reads a file and validates it into a dataset.
func LoadDataset(path string, opts Options) (*kpi.Dataset, error) {
	rows, err := LoadFile(path, opts)
	if err != nil {
		return nil, err
	}
	ds, err := kpi.NewDataset(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}
