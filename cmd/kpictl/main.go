// kpictl queries and maintains the KPI store from the command line.
//
// Usage:
//
//	kpictl lookup --bu BU1 --month Mar --kpi Revenue
//	kpictl series --bu BU1 --kpi CSAT
//	kpictl import --data kpis.xlsx --db kpi.db
//	kpictl export --out kpis.csv
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "kpictl",
		Usage:   "Query and maintain the balanced scorecard KPI store",
		Version: version,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Value:   "kpi.db",
				Usage:   "SQLite database path",
				EnvVars: []string{"KPI_DB"},
			},
			&cli.StringFlag{
				Name:    "data",
				Value:   "dummy",
				Usage:   `KPI source (.csv, .xlsx or "dummy"), imported when the database is empty`,
				EnvVars: []string{"KPI_DATA"},
			},
			&cli.StringFlag{
				Name:    "sheet",
				Usage:   "Worksheet of an .xlsx source",
				EnvVars: []string{"KPI_SHEET"},
			},
			&cli.StringFlag{
				Name:    "charts",
				Usage:   "YAML chart catalog",
				EnvVars: []string{"KPI_CHARTS"},
			},
			&cli.Int64Flag{
				Name:    "seed",
				Value:   1,
				Usage:   "Seed for the dummy dataset",
				EnvVars: []string{"KPI_SEED"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
				EnvVars: []string{"KPI_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"KPI_LOG_LEVEL"},
			},
		},

		Commands: []*cli.Command{
			lookupCommand(),
			seriesCommand(),
			subdivisionsCommand(),
			drilldownCommand(),
			scorecardCommand(),
			setCommand(),
			importCommand(),
			exportCommand(),
		},
	}
}
