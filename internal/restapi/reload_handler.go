package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/models"
)

// reloadHandler re-imports the configured source, discarding stored updates.
func (api *RestAPI) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.KpiManager.Reload(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(api.KpiManager.Statistics(), models.NewEmptyReferences()))
}
