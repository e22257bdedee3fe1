package models

import "scorecard.bizops.dev/internal/kpi"

// SeriesEntry is a trend, either for a business unit or a subdivision
// drill-down.
type SeriesEntry struct {
	BusinessUnit string          `json:"businessUnit,omitempty"`
	Perspective  kpi.Perspective `json:"perspective,omitempty"`
	KPI          string          `json:"kpi"`
	Subdivision  string          `json:"subdivision,omitempty"`
	Points       kpi.Series      `json:"points"`
	HasData      bool            `json:"hasData"`
	Chart        kpi.ChartSpec   `json:"chart"`
}

func NewSeriesEntry(kpiName string, points kpi.Series, chart kpi.ChartSpec) SeriesEntry {
	if points == nil {
		points = kpi.Series{}
	}
	return SeriesEntry{
		KPI:     kpiName,
		Points:  points,
		HasData: points.HasData(),
		Chart:   chart,
	}
}

// SubdivisionsEntry lists the drill-down targets of a KPI.
type SubdivisionsEntry struct {
	Perspective  kpi.Perspective `json:"perspective"`
	KPI          string          `json:"kpi"`
	Subdivisions []string        `json:"subdivisions"`
}

// ChartEntry is the chart preset of one KPI.
type ChartEntry struct {
	KPI   string        `json:"kpi"`
	Chart kpi.ChartSpec `json:"chart"`
}
