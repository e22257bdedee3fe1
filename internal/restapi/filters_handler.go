package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/models"
)

// filtersHandler lists what the dashboard's selectors can offer.
func (api *RestAPI) filtersHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := models.NewFiltersEntry(api.KpiManager.Dataset())

	references := models.NewEmptyReferences()
	catalog := api.KpiManager.Catalog()
	for _, p := range entry.Perspectives {
		for _, name := range p.KPIs {
			references.AddChart(catalog, name)
		}
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
