package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs every request once the handler is done, with the route it
// matched and the status it got. Failed requests are logged at warn level.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := &responseWriter{w, http.StatusOK}
			begin := time.Now()

			next.ServeHTTP(resp, r)

			entry := log.WithFields(log.Fields{
				"route":  routeName(r),
				"method": r.Method,
				"path":   r.URL.Path,
				"status": resp.statusCode,
				"took":   time.Since(begin).String(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn(" ====> request failed")
				return
			}
			entry.Debug(" ====> request")
		})
	}
}
