package kpistore

import (
	"time"

	"scorecard.bizops.dev/internal/appconf"
)

// DummySource selects the generated demo dataset instead of a file.
const DummySource = "dummy"

type Config struct {
	// Source is a .csv/.xlsx path or DummySource.
	Source string
	// Sheet is the XLSX worksheet to read; empty means the first.
	Sheet      string
	DBPath     string
	ChartsPath string
	Env        appconf.Environment
	Verbose    bool
	// Reimport replaces stored rows with Source even when the database
	// already has data.
	Reimport  bool
	DummySeed int64
	// ReloadInterval polls a file Source for changes; 0 disables polling.
	ReloadInterval time.Duration
}

func (config Config) isDummy() bool {
	return config.Source == "" || config.Source == DummySource
}

func (config Config) reloadEnabled() bool {
	return !config.isDummy() && config.ReloadInterval > 0
}
