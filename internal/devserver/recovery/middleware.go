// Package recovery turns record handler panics into JSON 500 responses.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/redema/records/internal/devserver/respond"
)

// HeaderRequestID is the correlation id the record client sends with each call.
const HeaderRequestID = "X-Request-ID"

// Middleware returns a handler wrapper that recovers panics, logs them with
// the caller's request id and answers 500. The request id is echoed back so
// the client can match its own logs.
func Middleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("request_id", requestID).
						Str("remote", r.RemoteAddr).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					if requestID != "" {
						w.Header().Set(HeaderRequestID, requestID)
					}
					respond.WriteInternalError(w, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
