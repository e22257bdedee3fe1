package models

import "scorecard.bizops.dev/internal/kpi"

// ValueEntry is the answer to a scalar lookup. Missing rows read as 0.
type ValueEntry struct {
	BusinessUnit string    `json:"businessUnit"`
	Month        kpi.Month `json:"month"`
	KPI          string    `json:"kpi"`
	Value        float64   `json:"value"`
}

// ValueUpdateRequest is the body of a value update.
type ValueUpdateRequest struct {
	BusinessUnit string   `json:"bu"`
	Month        string   `json:"month"`
	KPI          string   `json:"kpi"`
	Value        *float64 `json:"value"`
}

// ValueUpdateEntry echoes a successful update.
type ValueUpdateEntry struct {
	ValueEntry
	Updated bool `json:"updated"`
}
