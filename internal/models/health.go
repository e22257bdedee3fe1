package models

import "scorecard.bizops.dev/internal/kpistore"

// HealthEntry reports on the loaded dataset.
type HealthEntry struct {
	Status  string              `json:"status"`
	Env     string              `json:"env"`
	Dataset kpistore.Statistics `json:"dataset"`
}
