package kpi

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChartKind is the preset visualisation for a KPI's trend.
type ChartKind string

const (
	ChartLine  ChartKind = "line"
	ChartBar   ChartKind = "bar"
	ChartArea  ChartKind = "area"
	ChartGauge ChartKind = "gauge"
	ChartPie   ChartKind = "pie"
)

func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ChartLine, ChartBar, ChartArea, ChartGauge, ChartPie:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChartKind, s)
}

// ChartSpec is a chart kind together with the parameters a renderer needs.
type ChartSpec struct {
	Kind           ChartKind `json:"kind"`
	Unit           string    `json:"unit,omitempty"`
	Target         *float64  `json:"target,omitempty"`
	HigherIsBetter bool      `json:"higherIsBetter"`
}

func (c ChartSpec) validate() error {
	if _, err := ParseChartKind(string(c.Kind)); err != nil {
		return err
	}
	if c.Target != nil && (math.IsNaN(*c.Target) || math.IsInf(*c.Target, 0)) {
		return fmt.Errorf("%w: target must be finite", ErrInvalidChartKind)
	}
	if c.Kind == ChartGauge && c.Target == nil {
		return fmt.Errorf("%w: gauge needs a target", ErrInvalidChartKind)
	}
	return nil
}

// CatalogEntry binds a KPI to its perspective and chart.
type CatalogEntry struct {
	KPI         string      `json:"kpi"`
	Perspective Perspective `json:"perspective"`
	Chart       ChartSpec   `json:"chart"`
}

// ChartCatalog maps KPI names to chart specs. It is validated when built and
// read-only afterwards.
type ChartCatalog struct {
	entries  []CatalogEntry
	byKPI    map[string]int
	fallback ChartSpec
}

// NewChartCatalog validates entries. Every entry needs a known perspective
// and a valid chart; KPI names must be unique.
func NewChartCatalog(fallback ChartSpec, entries []CatalogEntry) (*ChartCatalog, error) {
	if err := fallback.validate(); err != nil {
		return nil, fmt.Errorf("default chart: %w", err)
	}

	c := &ChartCatalog{
		entries:  make([]CatalogEntry, 0, len(entries)),
		byKPI:    make(map[string]int, len(entries)),
		fallback: fallback,
	}
	for _, e := range entries {
		if e.KPI == "" {
			return nil, fmt.Errorf("chart catalog: kpi: %w", ErrEmptyField)
		}
		if !e.Perspective.Valid() {
			return nil, fmt.Errorf("chart catalog %q: %w: %q", e.KPI, ErrUnknownPerspective, e.Perspective)
		}
		if err := e.Chart.validate(); err != nil {
			return nil, fmt.Errorf("chart catalog %q: %w", e.KPI, err)
		}
		if _, dup := c.byKPI[e.KPI]; dup {
			return nil, fmt.Errorf("chart catalog: kpi %q listed twice", e.KPI)
		}
		c.byKPI[e.KPI] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Chart returns the chart for kpi, or the catalog default.
func (c *ChartCatalog) Chart(kpi string) ChartSpec {
	if i, ok := c.byKPI[kpi]; ok {
		return c.entries[i].Chart
	}
	return c.fallback
}

// PerspectiveOf returns the perspective a KPI is registered under.
func (c *ChartCatalog) PerspectiveOf(kpi string) (Perspective, bool) {
	if i, ok := c.byKPI[kpi]; ok {
		return c.entries[i].Perspective, true
	}
	return "", false
}

func (c *ChartCatalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *ChartCatalog) Default() ChartSpec {
	return c.fallback
}

func target(v float64) *float64 { return &v }

// DefaultChartCatalog is the set of KPIs the dashboard ships with.
func DefaultChartCatalog() *ChartCatalog {
	c, err := NewChartCatalog(ChartSpec{Kind: ChartLine, HigherIsBetter: true}, []CatalogEntry{
		{KPI: "Revenue", Perspective: Financial, Chart: ChartSpec{Kind: ChartBar, Unit: "$M", Target: target(3.5), HigherIsBetter: true}},
		{KPI: "Profit Margin", Perspective: Financial, Chart: ChartSpec{Kind: ChartLine, Unit: "%", HigherIsBetter: true}},
		{KPI: "Operating Cost", Perspective: Financial, Chart: ChartSpec{Kind: ChartBar, Unit: "$M"}},
		{KPI: "Cash Flow", Perspective: Financial, Chart: ChartSpec{Kind: ChartArea, Unit: "$M", HigherIsBetter: true}},
		{KPI: "CSAT", Perspective: CustomerService, Chart: ChartSpec{Kind: ChartGauge, Unit: "%", Target: target(90), HigherIsBetter: true}},
		{KPI: "NPS", Perspective: CustomerService, Chart: ChartSpec{Kind: ChartLine, HigherIsBetter: true}},
		{KPI: "Customer Retention", Perspective: CustomerService, Chart: ChartSpec{Kind: ChartLine, Unit: "%", HigherIsBetter: true}},
		{KPI: "Response Time", Perspective: CustomerService, Chart: ChartSpec{Kind: ChartBar, Unit: "hours"}},
		{KPI: "Defect Rate", Perspective: Quality, Chart: ChartSpec{Kind: ChartLine, Unit: "%"}},
		{KPI: UptimeKPI, Perspective: Quality, Chart: ChartSpec{Kind: ChartGauge, Unit: "%", Target: target(99.9), HigherIsBetter: true}},
		{KPI: "On-Time Delivery", Perspective: Quality, Chart: ChartSpec{Kind: ChartBar, Unit: "%", HigherIsBetter: true}},
		{KPI: "Employee Satisfaction", Perspective: EmployeeFulfillment, Chart: ChartSpec{Kind: ChartGauge, Unit: "%", Target: target(80), HigherIsBetter: true}},
		{KPI: "Employee Turnover", Perspective: EmployeeFulfillment, Chart: ChartSpec{Kind: ChartLine, Unit: "%"}},
		{KPI: "Training Hours", Perspective: EmployeeFulfillment, Chart: ChartSpec{Kind: ChartPie, Unit: "hours", HigherIsBetter: true}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

type catalogFile struct {
	Default *catalogChart  `yaml:"default"`
	KPIs    []catalogEntry `yaml:"kpis"`
}

type catalogChart struct {
	Kind           string   `yaml:"kind"`
	Unit           string   `yaml:"unit"`
	Target         *float64 `yaml:"target"`
	HigherIsBetter *bool    `yaml:"higherIsBetter"`
}

type catalogEntry struct {
	Name         string `yaml:"name"`
	Perspective  string `yaml:"perspective"`
	catalogChart `yaml:",inline"`
}

func (c catalogChart) spec() (ChartSpec, error) {
	kind, err := ParseChartKind(c.Kind)
	if err != nil {
		return ChartSpec{}, err
	}
	higher := true
	if c.HigherIsBetter != nil {
		higher = *c.HigherIsBetter
	}
	return ChartSpec{Kind: kind, Unit: c.Unit, Target: c.Target, HigherIsBetter: higher}, nil
}

// LoadChartCatalog decodes a YAML catalog:
//
//	default: {kind: line}
//	kpis:
//	  - {name: Revenue, perspective: Financial, kind: bar, unit: $M, target: 3.5}
func LoadChartCatalog(r io.Reader) (*ChartCatalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding chart catalog: %w", err)
	}

	fallback := ChartSpec{Kind: ChartLine, HigherIsBetter: true}
	if file.Default != nil {
		spec, err := file.Default.spec()
		if err != nil {
			return nil, fmt.Errorf("default chart: %w", err)
		}
		fallback = spec
	}

	entries := make([]CatalogEntry, 0, len(file.KPIs))
	for _, e := range file.KPIs {
		spec, err := e.spec()
		if err != nil {
			return nil, fmt.Errorf("chart catalog %q: %w", e.Name, err)
		}
		p, err := ParsePerspective(e.Perspective)
		if err != nil {
			return nil, fmt.Errorf("chart catalog %q: %w", e.Name, err)
		}
		entries = append(entries, CatalogEntry{KPI: strings.TrimSpace(e.Name), Perspective: p, Chart: spec})
	}

	return NewChartCatalog(fallback, entries)
}

// LoadChartCatalogFile reads a YAML catalog from disk.
func LoadChartCatalogFile(path string) (_ *ChartCatalog, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return LoadChartCatalog(f)
}
