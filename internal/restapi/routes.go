package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// RegisterPprofHandlers exposes the runtime profiler under /debug/pprof/.
func RegisterPprofHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// Router builds the httprouter tree for every /api route.
func (api *RestAPI) Router() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)

	router.Handler(http.MethodGet, "/api/health.json", validateAPIKey(api, api.healthHandler))
	router.Handler(http.MethodGet, "/api/kpi/filters.json", validateAPIKey(api, api.filtersHandler))
	router.Handler(http.MethodGet, "/api/kpi/value.json", validateAPIKey(api, api.valueHandler))
	router.Handler(http.MethodPost, "/api/kpi/value.json", validateAPIKey(api, api.updateValueHandler))
	router.Handler(http.MethodGet, "/api/kpi/series.json", validateAPIKey(api, api.seriesHandler))
	router.Handler(http.MethodGet, "/api/kpi/drilldown.json", validateAPIKey(api, api.drilldownHandler))
	router.Handler(http.MethodGet, "/api/kpi/subdivisions.json", validateAPIKey(api, api.subdivisionsHandler))
	router.Handler(http.MethodGet, "/api/kpi/scorecard/:bu", validateAPIKey(api, api.scorecardHandler))
	router.Handler(http.MethodGet, "/api/kpi/chart/*kpi", validateAPIKey(api, api.chartHandler))
	router.Handler(http.MethodGet, "/api/kpi/charts.json", validateAPIKey(api, api.chartsHandler))
	router.Handler(http.MethodGet, "/api/kpi/updates.json", validateAPIKey(api, api.updatesHandler))
	router.Handler(http.MethodPost, "/api/kpi/reload.json", validateAPIKey(api, api.reloadHandler))
	router.Handler(http.MethodGet, "/api/kpi/export.csv", validateAPIKey(api, api.exportCSVHandler))
	router.Handler(http.MethodGet, "/api/kpi/export.xlsx", validateAPIKey(api, api.exportXLSXHandler))
	return router
}

func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.Handle("/api/", api.Router())
}
