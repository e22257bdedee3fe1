package restapi

import (
	"net/http"

	"scorecard.bizops.dev/internal/models"
	"scorecard.bizops.dev/internal/utils"
)

// scorecardHandler builds every metric card for one business unit and month.
func (api *RestAPI) scorecardHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := make(map[string][]string)

	bu := utils.ExtractIDFromParams(r, "bu")
	if err := utils.ValidateName("bu", bu); err != nil {
		fieldErrors["bu"] = append(fieldErrors["bu"], err.Error())
	}
	month := utils.ParseMonthParam(r.URL.Query(), "month", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := r.Context().Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	scorecard := api.KpiManager.Dataset().Scorecard(bu, month)

	references := models.NewEmptyReferences()
	catalog := api.KpiManager.Catalog()
	for _, group := range scorecard.Perspectives {
		for _, card := range group.Cards {
			references.AddChart(catalog, card.KPI)
		}
	}

	api.sendResponse(w, r, models.NewEntryResponse(scorecard, references))
}
