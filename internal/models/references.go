package models

import "scorecard.bizops.dev/internal/kpi"

// ReferencesModel carries the chart presets of every KPI mentioned in an
// entry, so a client can draw without a second request.
type ReferencesModel struct {
	Charts map[string]kpi.ChartSpec `json:"charts"`
}

// NewEmptyReferences creates a new empty References model with initialized maps
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Charts: map[string]kpi.ChartSpec{},
	}
}

// AddChart records the chart for kpiName once.
func (r ReferencesModel) AddChart(catalog *kpi.ChartCatalog, kpiName string) {
	if _, ok := r.Charts[kpiName]; ok {
		return
	}
	r.Charts[kpiName] = catalog.Chart(kpiName)
}
