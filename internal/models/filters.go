package models

import "scorecard.bizops.dev/internal/kpi"

// PerspectiveFilter is one perspective and the KPIs it offers.
type PerspectiveFilter struct {
	Name kpi.Perspective `json:"name"`
	KPIs []string        `json:"kpis"`
}

// FiltersEntry is everything the sidebar needs to build its selectors.
type FiltersEntry struct {
	BusinessUnits []string            `json:"businessUnits"`
	Months        []kpi.Month         `json:"months"`
	Perspectives  []PerspectiveFilter `json:"perspectives"`
}

func NewFiltersEntry(ds *kpi.Dataset) FiltersEntry {
	entry := FiltersEntry{
		BusinessUnits: ds.BusinessUnits(),
		Months:        ds.Months(),
		Perspectives:  make([]PerspectiveFilter, 0, len(kpi.Perspectives())),
	}
	for _, p := range kpi.Perspectives() {
		entry.Perspectives = append(entry.Perspectives, PerspectiveFilter{Name: p, KPIs: ds.KPIs(p)})
	}
	return entry
}
