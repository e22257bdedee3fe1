package restapi

import (
	"net/http"
	"time"

	"scorecard.bizops.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Handler is the full middleware chain around the API routes: request
// logging, security headers, compression and per-key rate limiting.
func (api *RestAPI) Handler(extra ...func(mux *http.ServeMux)) http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	for _, register := range extra {
		register(mux)
	}

	var handler http.Handler = mux
	handler = api.rateLimiter.Handler(handler)
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}

// Close releases the rate limiter's background cleanup.
func (api *RestAPI) Close() {
	api.rateLimiter.Stop()
}
