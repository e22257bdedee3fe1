package restapi

import (
	"fmt"
	"net/http"
	"strings"

	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

// drilldownHandler returns the trend of one subdivision. An empty series with
// hasData=false is a normal answer; only subdivisions outside the eligibility
// table are rejected.
func (api *RestAPI) drilldownHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	perspective := utils.ParsePerspectiveParam(query, "perspective", fieldErrors)
	kpiName := utils.RequiredParam(query, "kpi", fieldErrors)
	subdivision := strings.ToUpper(utils.RequiredParam(query, "subdivision", fieldErrors))
	bu := utils.OptionalParam(query, "bu", fieldErrors)

	if len(fieldErrors) == 0 && !kpi.IsEligibleSubdivision(perspective, kpiName, subdivision) {
		fieldErrors["subdivision"] = append(fieldErrors["subdivision"],
			fmt.Sprintf("subdivision must be one of %s", strings.Join(kpi.EligibleSubdivisions(perspective, kpiName), ", ")))
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := r.Context().Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	ds := api.KpiManager.Dataset()
	var points kpi.Series
	if bu == "" {
		points = ds.LookupBySubdivision(perspective, kpiName, subdivision)
	} else {
		points = ds.SubdivisionSeries(kpi.Selection{
			BusinessUnit: bu,
			Perspective:  perspective,
			KPI:          kpiName,
			Subdivision:  subdivision,
		})
	}

	catalog := api.KpiManager.Catalog()
	entry := models.NewSeriesEntry(kpiName, points, catalog.Chart(kpiName))
	entry.BusinessUnit = bu
	entry.Perspective = perspective
	entry.Subdivision = subdivision

	references := models.NewEmptyReferences()
	references.AddChart(catalog, kpiName)

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
