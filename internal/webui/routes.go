package webui

import (
	"net/http"

	"scorecard.bizops.dev/internal/app"
)

type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/", webUI.debugIndexHandler)
}
