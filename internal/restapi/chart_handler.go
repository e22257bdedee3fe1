package restapi

import (
	"net/http"
	"strings"

	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	// Catch-all so that names like "Uptime / System Availability" fit.
	kpiName := strings.TrimPrefix(utils.ExtractIDFromParams(r, "kpi"), "/")
	if err := utils.ValidateName("kpi", kpiName); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"kpi": {err.Error()}})
		return
	}

	entry := models.ChartEntry{
		KPI:   kpiName,
		Chart: api.KpiManager.Catalog().Chart(kpiName),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}

// chartsHandler lists the whole chart catalog.
func (api *RestAPI) chartsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.KpiManager.Catalog().Entries(), models.NewEmptyReferences()))
}
