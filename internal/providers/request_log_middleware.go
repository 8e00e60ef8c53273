package providers

import (
	"net/http"
	"time"
)

// RequestLogMiddleware writes one access line per request to the get or
// post log, at a level matching the response status.
func RequestLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		t := GetLogTypeByRequestType(r.Method)
		format := "%s %s %d %s"
		args := []interface{}{r.Method, r.URL.Path, sw.status, time.Since(start)}
		switch {
		case sw.status >= 500:
			logger.Errorf(t, format, args...)
		case sw.status >= 400:
			logger.Warnf(t, format, args...)
		default:
			logger.Debugf(t, format, args...)
		}
	})
}
