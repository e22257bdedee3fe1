package restapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"scorecard.bizops.dev/internal/ingest"
	"scorecard.bizops.dev/internal/kpi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (api *RestAPI) exportCSVHandler(w http.ResponseWriter, r *http.Request) {
	api.export(w, r, "csv", "text/csv; charset=utf-8", func(buf *bytes.Buffer, rows []kpi.Row) error {
		return ingest.WriteCSV(buf, rows)
	})
}

func (api *RestAPI) exportXLSXHandler(w http.ResponseWriter, r *http.Request) {
	api.export(w, r, "xlsx", xlsxContentType, func(buf *bytes.Buffer, rows []kpi.Row) error {
		return ingest.WriteXLSX(buf, rows)
	})
}

// export renders the current snapshot into memory first so that an encoding
// failure can still be reported as a 500.
func (api *RestAPI) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(*bytes.Buffer, []kpi.Row) error) {
	if err := r.Context().Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, api.KpiManager.Dataset().Rows()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("kpis-%s.%s", time.Now().Format("20060102"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = buf.WriteTo(w)
}
