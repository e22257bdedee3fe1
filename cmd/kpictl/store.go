package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"scorecard.bizops.dev/internal/appconf"
	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/kpistore"
	"scorecard.bizops.dev/internal/logging"
)

func storeConfig(c *cli.Context) kpistore.Config {
	return kpistore.Config{
		Source:     c.String("data"),
		Sheet:      c.String("sheet"),
		DBPath:     c.String("db"),
		ChartsPath: c.String("charts"),
		Env:        appconf.Development,
		DummySeed:  c.Int64("seed"),
	}
}

func newLogger(c *cli.Context) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	return logging.NewStructuredLogger(c.App.ErrWriter, level), nil
}

// withManager opens the store for the duration of fn.
func withManager(c *cli.Context, reimport bool, fn func(ctx context.Context, manager *kpistore.Manager) error) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	config := storeConfig(c)
	config.Reimport = reimport

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	manager, err := kpistore.InitManager(ctx, config, logger)
	if err != nil {
		return err
	}
	defer manager.Shutdown()

	return fn(ctx, manager)
}

func parseMonth(c *cli.Context) (kpi.Month, error) {
	m, err := kpi.ParseMonth(c.String("month"))
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("invalid --month: %v", err), 2)
	}
	return m, nil
}

func parsePerspective(c *cli.Context) (kpi.Perspective, error) {
	p, err := kpi.ParsePerspective(c.String("perspective"))
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("invalid --perspective: %v", err), 2)
	}
	return p, nil
}

func wantJSON(c *cli.Context) bool {
	return c.String("format") == "json"
}

func printJSON(c *cli.Context, v interface{}) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
