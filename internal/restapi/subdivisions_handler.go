package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

func (api *RestAPI) subdivisionsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	perspective := utils.ParsePerspectiveParam(query, "perspective", fieldErrors)
	kpiName := utils.RequiredParam(query, "kpi", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	entry := models.SubdivisionsEntry{
		Perspective:  perspective,
		KPI:          kpiName,
		Subdivisions: kpi.EligibleSubdivisions(perspective, kpiName),
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
