package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

func (api *RestAPI) seriesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	bu := utils.RequiredParam(query, "bu", fieldErrors)
	kpiName := utils.RequiredParam(query, "kpi", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := r.Context().Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	catalog := api.KpiManager.Catalog()
	ds := api.KpiManager.Dataset()

	entry := models.NewSeriesEntry(kpiName, ds.LookupSeries(bu, kpiName), catalog.Chart(kpiName))
	entry.BusinessUnit = bu
	if p, ok := ds.PerspectiveOf(kpiName); ok {
		entry.Perspective = p
	}

	references := models.NewEmptyReferences()
	references.AddChart(catalog, kpiName)

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
