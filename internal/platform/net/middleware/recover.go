package middleware

import (
	"net/http"
	"runtime/debug"

	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
	pnet "adscope/internal/platform/net"
	phttp "adscope/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the standard 500 envelope with code panic
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.Error(perr.PanicErrf("panic recovered")).Write(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
