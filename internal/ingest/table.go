package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"scorecard.bizops.dev/internal/kpi"
)

var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrInvalidValue      = kpi.ErrInvalidValue
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Options controls how a table is mapped onto KPI rows.
type Options struct {
	// Catalog supplies the perspective of a KPI when the table has no
	// Perspective column. Nil means kpi.DefaultChartCatalog.
	Catalog *kpi.ChartCatalog
	// Sheet selects the XLSX worksheet; empty means the first one.
	Sheet string
}

func (o Options) catalog() *kpi.ChartCatalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return kpi.DefaultChartCatalog()
}

type column int

const (
	colBusinessUnit column = iota
	colMonth
	colPerspective
	colKPI
	colSubdivision
	colValue
	numColumns
)

var headerAliases = map[string]column{
	"bu":           colBusinessUnit,
	"businessunit": colBusinessUnit,
	"month":        colMonth,
	"perspective":  colPerspective,
	"metric":       colKPI,
	"kpi":          colKPI,
	"subdiv":       colSubdivision,
	"subdivision":  colSubdivision,
	"value":        colValue,
}

var columnNames = [numColumns]string{"BusinessUnit", "Month", "Perspective", "KPI", "Subdivision", "Value"}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// mapHeader returns the record index of each known column, -1 when absent.
func mapHeader(header []string) ([numColumns]int, error) {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		if c, ok := headerAliases[normalizeHeader(h)]; ok && idx[c] == -1 {
			idx[c] = i
		}
	}
	for _, required := range []column{colBusinessUnit, colMonth, colKPI, colValue} {
		if idx[required] == -1 {
			return idx, fmt.Errorf("%w: %s", ErrMissingColumn, columnNames[required])
		}
	}
	return idx, nil
}

// parseRecords turns a header plus data records into rows. Line numbers in
// errors are 1-based and count the header.
func parseRecords(records [][]string, opts Options) ([]kpi.Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}
	idx, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}
	catalog := opts.catalog()

	rows := make([]kpi.Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		if blank(rec) {
			continue
		}
		field := func(c column) string {
			if idx[c] < 0 || idx[c] >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx[c]])
		}

		month, err := kpi.ParseMonth(field(colMonth))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		value, err := ParseValue(field(colValue))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := field(colKPI)
		var perspective kpi.Perspective
		if raw := field(colPerspective); raw != "" {
			perspective, err = kpi.ParsePerspective(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		} else if p, ok := catalog.PerspectiveOf(name); ok {
			perspective = p
		} else {
			perspective = kpi.Financial
		}

		rows = append(rows, kpi.Row{
			BusinessUnit: field(colBusinessUnit),
			Month:        month,
			Perspective:  perspective,
			KPI:          name,
			Subdivision:  field(colSubdivision),
			Value:        value,
		})
	}
	return rows, nil
}

var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseValue accepts plain numbers, thousands separators and a trailing %.
// A comma outside a thousands group (e.g. a decimal comma) is an error, as
// are NaN and infinities.
func ParseValue(s string) (float64, error) {
	clean := strings.TrimSuffix(strings.TrimSpace(s), "%")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidValue)
	}
	if strings.Contains(clean, ",") {
		if !thousandsGrouped.MatchString(clean) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		clean = strings.ReplaceAll(clean, ",", "")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || !kpi.Finite(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func header() []string {
	return columnNames[:]
}

func record(r kpi.Row) []string {
	return []string{
		r.BusinessUnit,
		r.Month.String(),
		string(r.Perspective),
		r.KPI,
		r.Subdivision,
		strconv.FormatFloat(r.Value, 'f', -1, 64),
	}
}
