package restapi

import (
	"net/http"
	"strconv"

	"scorecard.bizops.dev/internal/models"
)

const maxUpdatesLimit = 500

// updatesHandler lists the most recent value updates, newest first.
func (api *RestAPI) updatesHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxUpdatesLimit {
			api.validationErrorResponse(w, r, map[string][]string{
				"limit": {"limit must be between 1 and 500"},
			})
			return
		}
		limit = n
	}

	updates, err := api.KpiManager.Updates(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(updates, models.NewEmptyReferences()))
}
