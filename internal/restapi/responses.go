package restapi

import (
	"encoding/json"
	"net/http"

	"scorecard.bizops.dev/internal/logging"
	"scorecard.bizops.dev/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if response.Code != 0 && response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode response", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, r, http.StatusNotFound, "resource not found")
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
