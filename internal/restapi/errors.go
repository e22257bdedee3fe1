package restapi

import (
	"encoding/json"
	"net/http"

	"scorecard.bizops.dev/internal/logging"
	"scorecard.bizops.dev/internal/models"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeError(w http.ResponseWriter, r *http.Request, code int, text string) {
	setJSONResponseType(&w)
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(errorResponse{
		Code:        code,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     2,
	})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode error response", err)
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, r, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err)
	api.writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, text string) {
	api.writeError(w, r, http.StatusBadRequest, text)
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode validation error response", err)
	}
}
