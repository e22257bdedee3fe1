package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

func (api *RestAPI) valueHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	bu := utils.RequiredParam(query, "bu", fieldErrors)
	month := utils.ParseMonthParam(query, "month", fieldErrors)
	kpiName := utils.RequiredParam(query, "kpi", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := r.Context().Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.ValueEntry{
		BusinessUnit: bu,
		Month:        month,
		KPI:          kpiName,
		Value:        api.KpiManager.Dataset().LookupScalar(bu, month, kpiName),
	}

	references := models.NewEmptyReferences()
	references.AddChart(api.KpiManager.Catalog(), kpiName)

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
