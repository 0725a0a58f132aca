package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"adscope/internal/platform/net/middleware"
)

// defaultTimeout bounds a request when the caller does not pick one
const defaultTimeout = 30 * time.Second

// slowRequest marks access log lines at warn; a single model call is usually well under this
const slowRequest = 20 * time.Second

// CommonStack returns a baseline per module middleware slice with a 30s request timeout
func CommonStack() []func(http.Handler) http.Handler {
	return CommonStackTimeout(defaultTimeout)
}

// CommonStackTimeout is CommonStack with a caller chosen request timeout
// analysis requests wait on model calls and need far more than 30s
func CommonStackTimeout(d time.Duration) []func(http.Handler) http.Handler {
	if d <= 0 {
		d = defaultTimeout
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability, after RequestID so log lines carry it
		middleware.AccessLog(middleware.AccessLogOptions{Slow: slowRequest}),

		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(d),
	}
}
