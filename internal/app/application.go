package app

import (
	"log/slog"

	"scorecard.bizops.dev/internal/appconf"
	"scorecard.bizops.dev/internal/kpistore"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	StoreConfig kpistore.Config
	Logger      *slog.Logger
	KpiManager  *kpistore.Manager
}
