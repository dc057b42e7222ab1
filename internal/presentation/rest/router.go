package rest

import (
	"net/http"

	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/auth"
)

// publicPaths are served without a bearer token.
var publicPaths = []string{"/healthz", "/readyz", "/metrics"} //nolint:gochecknoglobals // skip

// NewRouter mounts the health, rating and metrics routes. When tokens is
// non-nil every route outside publicPaths requires a valid bearer token.
func NewRouter(rating *RatingHandler, health *HealthHandler, metrics http.Handler, tokens auth.TokenValidator) http.Handler {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	rating.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	if tokens == nil {
		return mux
	}
	return auth.HTTPMiddleware(tokens, publicPaths, mux)
}
