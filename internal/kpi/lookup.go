package kpi

import "sort"

// Selection is a transient query. Zero-valued fields do not constrain.
type Selection struct {
	BusinessUnit string
	Month        Month
	Perspective  Perspective
	KPI          string
	Subdivision  string
	// BusinessLevelOnly keeps only rows without a subdivision.
	BusinessLevelOnly bool
}

func (s Selection) matches(r Row) bool {
	if s.BusinessUnit != "" && r.BusinessUnit != s.BusinessUnit {
		return false
	}
	if s.Month != 0 && r.Month != s.Month {
		return false
	}
	if s.Perspective != "" && r.Perspective != s.Perspective {
		return false
	}
	if s.KPI != "" && r.KPI != s.KPI {
		return false
	}
	if s.Subdivision != "" && r.Subdivision != s.Subdivision {
		return false
	}
	if s.BusinessLevelOnly && r.Subdivision != "" {
		return false
	}
	return true
}

// Point is one (month, value) pair of a trend.
type Point struct {
	Month Month   `json:"month"`
	Value float64 `json:"value"`
}

// Series is a trend in canonical month order. It is never nil.
type Series []Point

// HasData reports whether a drill-down panel has anything to show.
func (s Series) HasData() bool {
	return len(s) > 0
}

// Filter returns the rows matching sel in ingestion order.
func (ds *Dataset) Filter(sel Selection) []Row {
	out := []Row{}
	if ds == nil {
		return out
	}
	for _, r := range ds.rows {
		if sel.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// LookupScalar returns the value of the first row matching bu, month and kpi
// exactly, or 0 when there is none.
func (ds *Dataset) LookupScalar(bu string, month Month, kpi string) float64 {
	if ds == nil {
		return 0
	}
	i, ok := ds.scalars[scalarKey{businessUnit: bu, month: month, kpi: kpi}]
	if !ok {
		return 0
	}
	return ds.rows[i].Value
}

// LookupSeries returns the trend of kpi for bu. Each month carries the same
// value LookupScalar would return for it.
func (ds *Dataset) LookupSeries(bu, kpi string) Series {
	series := Series{}
	if ds == nil {
		return series
	}
	for m := January; m <= December; m++ {
		if i, ok := ds.scalars[scalarKey{businessUnit: bu, month: m, kpi: kpi}]; ok {
			series = append(series, Point{Month: m, Value: ds.rows[i].Value})
		}
	}
	return series
}

// LookupBySubdivision returns the drill-down trend for a subdivision. An
// empty series means "data not available", not a failure. All three
// arguments must match exactly; an unknown perspective matches nothing.
func (ds *Dataset) LookupBySubdivision(perspective Perspective, kpi, subdivision string) Series {
	return ds.SubdivisionSeries(Selection{Perspective: perspective, KPI: kpi, Subdivision: subdivision})
}

// SubdivisionSeries is LookupBySubdivision with an arbitrary selection, e.g.
// narrowed to one business unit. The selection's Month is ignored; a
// selection without a known perspective, KPI and subdivision matches nothing.
func (ds *Dataset) SubdivisionSeries(sel Selection) Series {
	sel.Month = 0
	if sel.Subdivision == "" || sel.KPI == "" || !sel.Perspective.Valid() {
		return Series{}
	}
	return toSeries(ds.Filter(sel))
}

// toSeries orders rows by month, keeping ingestion order within a month.
func toSeries(rows []Row) Series {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Month < rows[j].Month
	})
	series := make(Series, 0, len(rows))
	for _, r := range rows {
		series = append(series, Point{Month: r.Month, Value: r.Value})
	}
	return series
}
