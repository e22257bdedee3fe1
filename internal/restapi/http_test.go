package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scorecard.bizops.dev/internal/app"
	"scorecard.bizops.dev/internal/appconf"
	"scorecard.bizops.dev/internal/kpistore"
	"scorecard.bizops.dev/internal/logging"
	"scorecard.bizops.dev/internal/models"
)

const testKey = "TEST"

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	storeConfig := kpistore.Config{
		Source:    kpistore.DummySource,
		DBPath:    ":memory:",
		Env:       appconf.Test,
		DummySeed: 42,
	}
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)
	manager, err := kpistore.InitManager(context.Background(), storeConfig, logger)
	require.NoError(t, err)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.EnvFlagToEnvironment("test"),
			ApiKeys:   []string{testKey},
			RateLimit: 1000,
		},
		StoreConfig: storeConfig,
		Logger:      logger,
		KpiManager:  manager,
	}

	api := NewRestAPI(application)
	t.Cleanup(func() {
		api.Close()
		manager.Shutdown()
	})
	return api
}

func withKey(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", testKey)
	return path + "?" + params.Encode()
}

// serveRequest runs req through the routes without the middleware chain.
func serveRequest(api *RestAPI, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)
	return recorder
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, endpoint string, body string) (*httptest.ResponseRecorder, models.ResponseModel) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, endpoint, reader)
	recorder := serveRequest(api, req)

	var response models.ResponseModel
	if strings.HasPrefix(recorder.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response), recorder.Body.String())
	}
	return recorder, response
}

// entryOf re-decodes data.entry of a response into out.
func entryOf(t *testing.T, response models.ResponseModel, out interface{}) {
	t.Helper()
	decodeField(t, response, "entry", out)
}

func listOf(t *testing.T, response models.ResponseModel, out interface{}) {
	t.Helper()
	decodeField(t, response, "list", out)
}

func decodeField(t *testing.T, response models.ResponseModel, field string, out interface{}) {
	t.Helper()
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object")
	raw, err := json.Marshal(data[field])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func fieldErrorsOf(t *testing.T, recorder *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.FieldErrors
}
