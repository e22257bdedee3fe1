package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	entry := models.HealthEntry{
		Status:  "ok",
		Env:     api.Config.Env.String(),
		Dataset: api.KpiManager.Statistics(),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
