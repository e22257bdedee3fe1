package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"scorecard.bizops.dev/internal/ingest"
	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/kpistore"
	"scorecard.bizops.dev/internal/logging"
)

func requiredString(name, usage string) *cli.StringFlag {
	return &cli.StringFlag{Name: name, Usage: usage, Required: true}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printSeries(c *cli.Context, series kpi.Series) error {
	if wantJSON(c) {
		return printJSON(c, series)
	}
	if !series.HasData() {
		_, err := fmt.Fprintln(c.App.Writer, "no data")
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tVALUE")
	for _, p := range series {
		fmt.Fprintf(tw, "%s\t%s\n", p.Month, formatValue(p.Value))
	}
	return tw.Flush()
}

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Print one KPI value (0 when missing)",
		Flags: []cli.Flag{
			requiredString("bu", "Business unit"),
			requiredString("month", "Month (Jan, January or 1)"),
			requiredString("kpi", "KPI name"),
		},
		Action: func(c *cli.Context) error {
			month, err := parseMonth(c)
			if err != nil {
				return err
			}
			return withManager(c, false, func(_ context.Context, manager *kpistore.Manager) error {
				value := manager.Dataset().LookupScalar(c.String("bu"), month, c.String("kpi"))
				if wantJSON(c) {
					return printJSON(c, map[string]interface{}{
						"businessUnit": c.String("bu"),
						"month":        month,
						"kpi":          c.String("kpi"),
						"value":        value,
					})
				}
				_, err := fmt.Fprintln(c.App.Writer, formatValue(value))
				return err
			})
		},
	}
}

func seriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "series",
		Usage: "Print the monthly trend of a KPI for a business unit",
		Flags: []cli.Flag{
			requiredString("bu", "Business unit"),
			requiredString("kpi", "KPI name"),
		},
		Action: func(c *cli.Context) error {
			return withManager(c, false, func(_ context.Context, manager *kpistore.Manager) error {
				return printSeries(c, manager.Dataset().LookupSeries(c.String("bu"), c.String("kpi")))
			})
		},
	}
}

func subdivisionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "subdivisions",
		Usage: "List the subdivisions a KPI can be drilled into",
		Flags: []cli.Flag{
			requiredString("perspective", "Perspective"),
			requiredString("kpi", "KPI name"),
		},
		Action: func(c *cli.Context) error {
			perspective, err := parsePerspective(c)
			if err != nil {
				return err
			}
			subs := kpi.EligibleSubdivisions(perspective, c.String("kpi"))
			if wantJSON(c) {
				return printJSON(c, subs)
			}
			_, err = fmt.Fprintln(c.App.Writer, strings.Join(subs, "\n"))
			return err
		},
	}
}

func drilldownCommand() *cli.Command {
	return &cli.Command{
		Name:  "drilldown",
		Usage: "Print the trend of a KPI for one subdivision",
		Flags: []cli.Flag{
			requiredString("perspective", "Perspective"),
			requiredString("kpi", "KPI name"),
			requiredString("subdivision", "Subdivision"),
			&cli.StringFlag{Name: "bu", Usage: "Restrict to one business unit"},
		},
		Action: func(c *cli.Context) error {
			perspective, err := parsePerspective(c)
			if err != nil {
				return err
			}
			sub := strings.ToUpper(c.String("subdivision"))
			if !kpi.IsEligibleSubdivision(perspective, c.String("kpi"), sub) {
				return cli.Exit(fmt.Sprintf("%s is not a subdivision of %s (choose from %s)",
					sub, c.String("kpi"), strings.Join(kpi.EligibleSubdivisions(perspective, c.String("kpi")), ", ")), 2)
			}
			return withManager(c, false, func(_ context.Context, manager *kpistore.Manager) error {
				return printSeries(c, manager.Dataset().SubdivisionSeries(kpi.Selection{
					BusinessUnit: c.String("bu"),
					Perspective:  perspective,
					KPI:          c.String("kpi"),
					Subdivision:  sub,
				}))
			})
		},
	}
}

func scorecardCommand() *cli.Command {
	return &cli.Command{
		Name:  "scorecard",
		Usage: "Print the metric cards of a business unit for a month",
		Flags: []cli.Flag{
			requiredString("bu", "Business unit"),
			requiredString("month", "Month"),
		},
		Action: func(c *cli.Context) error {
			month, err := parseMonth(c)
			if err != nil {
				return err
			}
			return withManager(c, false, func(_ context.Context, manager *kpistore.Manager) error {
				sc := manager.Dataset().Scorecard(c.String("bu"), month)
				if wantJSON(c) {
					return printJSON(c, sc)
				}
				tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PERSPECTIVE\tKPI\tVALUE\tVS PREV")
				for _, group := range sc.Perspectives {
					for _, card := range group.Cards {
						change := "-"
						if card.ChangePct != nil {
							change = fmt.Sprintf("%+.2f%%", *card.ChangePct)
						}
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", group.Perspective, card.KPI, formatValue(card.Value), change)
					}
				}
				return tw.Flush()
			})
		},
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Overwrite one KPI value",
		Flags: []cli.Flag{
			requiredString("bu", "Business unit"),
			requiredString("month", "Month"),
			requiredString("kpi", "KPI name"),
			&cli.Float64Flag{Name: "value", Usage: "New value", Required: true},
		},
		Action: func(c *cli.Context) error {
			month, err := parseMonth(c)
			if err != nil {
				return err
			}
			if !kpi.Finite(c.Float64("value")) {
				return cli.Exit("value must be a finite number", 1)
			}
			return withManager(c, false, func(ctx context.Context, manager *kpistore.Manager) error {
				ok, err := manager.UpdateValue(ctx, c.String("bu"), c.String("kpi"), month, c.Float64("value"))
				if err != nil {
					return err
				}
				if !ok {
					return cli.Exit(fmt.Sprintf("no row for %s/%s/%s", c.String("bu"), month, c.String("kpi")), 1)
				}
				_, err = fmt.Fprintln(c.App.Writer, "updated")
				return err
			})
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Replace the stored rows with --data",
		Action: func(c *cli.Context) error {
			return withManager(c, true, func(_ context.Context, manager *kpistore.Manager) error {
				stats := manager.Statistics()
				if wantJSON(c) {
					return printJSON(c, stats)
				}
				_, err := fmt.Fprintf(c.App.Writer, "imported %d rows from %s\n", stats.Rows, stats.Source)
				return err
			})
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the stored rows to a .csv or .xlsx file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (.csv or .xlsx)", Required: true},
		},
		Action: func(c *cli.Context) error {
			out := c.String("out")
			var write func(f *os.File, rows []kpi.Row) error
			switch strings.ToLower(filepath.Ext(out)) {
			case ".csv":
				write = func(f *os.File, rows []kpi.Row) error { return ingest.WriteCSV(f, rows) }
			case ".xlsx":
				write = func(f *os.File, rows []kpi.Row) error { return ingest.WriteXLSX(f, rows) }
			default:
				return cli.Exit(fmt.Sprintf("unsupported export format %q", filepath.Ext(out)), 2)
			}

			return withManager(c, false, func(_ context.Context, manager *kpistore.Manager) (err error) {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer logging.HandleDeferredError(&err, f.Close, nil, "close_export_file")

				rows := manager.Dataset().Rows()
				if err := write(f, rows); err != nil {
					return err
				}
				_, err = fmt.Fprintf(c.App.Writer, "wrote %d rows to %s\n", len(rows), out)
				return err
			})
		},
	}
}
