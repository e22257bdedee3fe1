package restapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"scorecard.bizops.dev/internal/models"
)

const (
	noKeyBucket       = "__no_key__"
	limiterIdleExpiry = 10 * time.Minute
)

type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware provides per-API-key rate limiting
type RateLimitMiddleware struct {
	limiters    map[string]*keyLimiter
	mu          sync.Mutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once
	exemptKeys  map[string]bool
}

// NewRateLimitMiddleware allows requestsPerInterval requests per API key in
// each interval, with bursts of the same size. A non-positive limit disables
// limiting.
func NewRateLimitMiddleware(requestsPerInterval int, interval time.Duration, exemptKeys ...string) *RateLimitMiddleware {
	rateLimit := rate.Inf
	if requestsPerInterval > 0 {
		rateLimit = rate.Every(interval / time.Duration(requestsPerInterval))
	}

	middleware := &RateLimitMiddleware{
		limiters:    make(map[string]*keyLimiter),
		rateLimit:   rateLimit,
		burstSize:   requestsPerInterval,
		cleanupTick: time.NewTicker(5 * time.Minute),
		done:        make(chan struct{}),
		exemptKeys:  make(map[string]bool, len(exemptKeys)),
	}
	for _, key := range exemptKeys {
		middleware.exemptKeys[key] = true
	}

	go middleware.cleanup()

	return middleware
}

// getLimiter gets or creates a rate limiter for the given API key
func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[apiKey]
	if !exists {
		entry = &keyLimiter{limiter: rate.NewLimiter(rl.rateLimit, rl.burstSize)}
		rl.limiters[apiKey] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// Handler is the HTTP middleware function
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.rateLimit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.URL.Query().Get("key")
		if apiKey == "" {
			apiKey = noKeyBucket
		}

		if rl.exemptKeys[apiKey] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(apiKey).Allow() {
			rl.sendRateLimitExceeded(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	retryAfter := int(math.Ceil(1 / float64(rl.rateLimit)))
	if retryAfter < 1 {
		retryAfter = 1
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.NewResponse(http.StatusTooManyRequests, nil, "Rate limit exceeded. Please try again later.")
	_ = json.NewEncoder(w).Encode(response)
}

// cleanup periodically drops limiters that have been idle for a while
func (rl *RateLimitMiddleware) cleanup() {
	for {
		select {
		case <-rl.done:
			return
		case now := <-rl.cleanupTick.C:
			rl.mu.Lock()
			for key, entry := range rl.limiters {
				if now.Sub(entry.lastSeen) > limiterIdleExpiry {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTick.Stop()
		close(rl.done)
	})
}
