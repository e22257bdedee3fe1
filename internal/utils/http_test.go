package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "Basic ID",
			id:   "BU1",
			want: "BU1",
		},
		{
			name: "ID with JSON extension",
			id:   "BU1.json",
			want: "BU1",
		},
		{
			name: "Escaped KPI name",
			id:   "Profit%20Margin.json",
			want: "Profit Margin",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.Handler(http.MethodGet, "/api/test/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "id")
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/test/"+tc.id, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, result)
		})
	}
}
