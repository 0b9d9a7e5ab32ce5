// pkg/middleware/recover.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"shopgate/pkg/problems"
)

func Recover(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorw("panic", "err", rec, "request_id", RequestIDFrom(r.Context()), "path", r.URL.Path, "stack", string(debug.Stack()))
					problems.Write(w, http.StatusInternalServerError, "internal", "Internal error", "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog writes one line per request. Query strings are left out because
// the OAuth callback carries the authorization code.
func AccessLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Infow("http", "method", r.Method, "path", r.URL.Path, "status", sw.status, "request_id", RequestIDFrom(r.Context()))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
