package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"scorecard.bizops.dev/internal/logging"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   dumpConfig.Sdump(data),
	})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render debug page", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	manager := webUI.KpiManager

	switch dataType {
	case "stats":
		data = manager.Statistics()
		title = "KPI Dataset - Statistics"
	case "rows":
		data = manager.Dataset().Rows()
		title = "KPI Dataset - Rows"
	case "catalog":
		data = manager.Catalog().Entries()
		title = "KPI Dataset - Chart Catalog"
	case "updates":
		updates, err := manager.Updates(r.Context(), 100)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = updates
		title = "KPI Dataset - Value Updates"
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, rows, catalog, updates.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, r, title, data)
}
