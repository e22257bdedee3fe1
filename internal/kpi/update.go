package kpi

// UpdateValue returns a copy of the dataset with the row LookupScalar(bu,
// month, kpi) reads from set to value. When no row matches it returns the
// receiver unchanged and false. The receiver is never modified.
func (ds *Dataset) UpdateValue(bu, kpi string, month Month, value float64) (*Dataset, bool) {
	if ds == nil {
		return ds, false
	}
	i, ok := ds.scalars[scalarKey{businessUnit: bu, month: month, kpi: kpi}]
	if !ok {
		return ds, false
	}

	rows := make([]Row, len(ds.rows))
	copy(rows, ds.rows)
	rows[i].Value = value

	// keys are unchanged, so the index can be shared
	return &Dataset{rows: rows, scalars: ds.scalars}, true
}

// Lookup returns the row LookupScalar reads from.
func (ds *Dataset) Lookup(bu string, month Month, kpi string) (Row, bool) {
	if ds == nil {
		return Row{}, false
	}
	i, ok := ds.scalars[scalarKey{businessUnit: bu, month: month, kpi: kpi}]
	if !ok {
		return Row{}, false
	}
	return ds.rows[i], true
}
