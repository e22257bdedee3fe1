package restapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

const maxUpdateBodyBytes = 1 << 16

// updateValueHandler overwrites the value a scalar lookup for (bu, month,
// kpi) returns. Unknown rows are not created; they answer 404.
func (api *RestAPI) updateValueHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req models.ValueUpdateRequest
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			api.writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		api.badRequestResponse(w, r, "invalid JSON body")
		return
	}

	fieldErrors := make(map[string][]string)

	bu := strings.TrimSpace(req.BusinessUnit)
	if err := utils.ValidateName("bu", bu); err != nil {
		fieldErrors["bu"] = append(fieldErrors["bu"], err.Error())
	}
	kpiName := strings.TrimSpace(req.KPI)
	if err := utils.ValidateName("kpi", kpiName); err != nil {
		fieldErrors["kpi"] = append(fieldErrors["kpi"], err.Error())
	}
	month, err := kpi.ParseMonth(req.Month)
	if err != nil {
		fieldErrors["month"] = append(fieldErrors["month"], `Invalid field value for field "month".`)
	}
	if req.Value == nil {
		fieldErrors["value"] = append(fieldErrors["value"], "value is required")
	} else if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		fieldErrors["value"] = append(fieldErrors["value"], "value must be a finite number")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ok, err := api.KpiManager.UpdateValue(r.Context(), bu, kpiName, month, *req.Value)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	entry := models.ValueUpdateEntry{
		ValueEntry: models.ValueEntry{
			BusinessUnit: bu,
			Month:        month,
			KPI:          kpiName,
			Value:        api.KpiManager.Dataset().LookupScalar(bu, month, kpiName),
		},
		Updated: true,
	}

	references := models.NewEmptyReferences()
	references.AddChart(api.KpiManager.Catalog(), kpiName)

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
