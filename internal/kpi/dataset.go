package kpi

import (
	"fmt"
	"sort"
	"strings"
)

// Row is one observation of a KPI. An empty Subdivision means the row is the
// business-unit level figure.
type Row struct {
	BusinessUnit string      `json:"businessUnit"`
	Month        Month       `json:"month"`
	Perspective  Perspective `json:"perspective"`
	KPI          string      `json:"kpi"`
	Subdivision  string      `json:"subdivision,omitempty"`
	Value        float64     `json:"value"`
}

// Key identifies a row uniquely within a Dataset.
type Key struct {
	BusinessUnit string
	Month        Month
	Perspective  Perspective
	KPI          string
	Subdivision  string
}

func (r Row) Key() Key {
	return Key{
		BusinessUnit: r.BusinessUnit,
		Month:        r.Month,
		Perspective:  r.Perspective,
		KPI:          r.KPI,
		Subdivision:  r.Subdivision,
	}
}

func (k Key) String() string {
	s := fmt.Sprintf("%s/%s/%s/%s", k.BusinessUnit, k.Month, k.Perspective, k.KPI)
	if k.Subdivision != "" {
		s += "/" + k.Subdivision
	}
	return s
}

// scalarKey is the (bu, month, kpi) selection used by scalar lookups and updates.
type scalarKey struct {
	businessUnit string
	month        Month
	kpi          string
}

// Dataset is an immutable, owned table of KPI rows. Updates produce a new
// Dataset; a *Dataset can therefore be shared freely between readers.
type Dataset struct {
	rows []Row
	// first row index for each (bu, month, kpi); "first match wins"
	scalars map[scalarKey]int
}

// NewDataset validates rows and builds a dataset from a private copy of them.
// Duplicate keys are rejected with ErrDuplicateRow, NaN and infinite values
// with ErrInvalidValue.
func NewDataset(rows []Row) (*Dataset, error) {
	owned := make([]Row, len(rows))
	seen := make(map[Key]int, len(rows))
	scalars := make(map[scalarKey]int, len(rows))

	for i, r := range rows {
		r.BusinessUnit = strings.TrimSpace(r.BusinessUnit)
		r.KPI = strings.TrimSpace(r.KPI)
		r.Subdivision = strings.TrimSpace(r.Subdivision)

		if r.BusinessUnit == "" {
			return nil, fmt.Errorf("row %d: business unit: %w", i, ErrEmptyField)
		}
		if r.KPI == "" {
			return nil, fmt.Errorf("row %d: kpi: %w", i, ErrEmptyField)
		}
		if !r.Month.Valid() {
			return nil, fmt.Errorf("row %d: %w: %d", i, ErrUnknownMonth, int(r.Month))
		}
		if !r.Perspective.Valid() {
			return nil, fmt.Errorf("row %d: %w: %q", i, ErrUnknownPerspective, r.Perspective)
		}
		if !Finite(r.Value) {
			return nil, fmt.Errorf("row %d: %w: %v", i, ErrInvalidValue, r.Value)
		}

		key := r.Key()
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s (rows %d and %d)", ErrDuplicateRow, key, prev, i)
		}
		seen[key] = i

		sk := scalarKey{businessUnit: r.BusinessUnit, month: r.Month, kpi: r.KPI}
		if _, ok := scalars[sk]; !ok {
			scalars[sk] = i
		}
		owned[i] = r
	}

	return &Dataset{rows: owned, scalars: scalars}, nil
}

// MustDataset is NewDataset for static tables known to be valid.
func MustDataset(rows []Row) *Dataset {
	ds, err := NewDataset(rows)
	if err != nil {
		panic(err)
	}
	return ds
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.rows)
}

// Rows returns a copy of the rows in ingestion order.
func (ds *Dataset) Rows() []Row {
	if ds == nil {
		return []Row{}
	}
	out := make([]Row, len(ds.rows))
	copy(out, ds.rows)
	return out
}

// BusinessUnits returns the distinct business units, sorted.
func (ds *Dataset) BusinessUnits() []string {
	return ds.distinct(func(r Row) string { return r.BusinessUnit })
}

// KPIs returns the distinct KPI names of a perspective in first-seen order.
// An empty perspective returns every KPI.
func (ds *Dataset) KPIs(perspective Perspective) []string {
	seen := make(map[string]bool)
	out := []string{}
	if ds == nil {
		return out
	}
	for _, r := range ds.rows {
		if perspective != "" && r.Perspective != perspective {
			continue
		}
		if !seen[r.KPI] {
			seen[r.KPI] = true
			out = append(out, r.KPI)
		}
	}
	return out
}

// Months returns the months present in the dataset in canonical order.
func (ds *Dataset) Months() []Month {
	present := [13]bool{}
	if ds != nil {
		for _, r := range ds.rows {
			present[r.Month] = true
		}
	}
	out := []Month{}
	for m := January; m <= December; m++ {
		if present[m] {
			out = append(out, m)
		}
	}
	return out
}

// PerspectiveOf returns the perspective of the first row carrying kpi.
func (ds *Dataset) PerspectiveOf(kpi string) (Perspective, bool) {
	if ds == nil {
		return "", false
	}
	for _, r := range ds.rows {
		if r.KPI == kpi {
			return r.Perspective, true
		}
	}
	return "", false
}

func (ds *Dataset) distinct(field func(Row) string) []string {
	out := []string{}
	if ds == nil {
		return out
	}
	seen := make(map[string]bool)
	for _, r := range ds.rows {
		v := field(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
