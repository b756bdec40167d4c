package restserver

import (
	"net/http"

	"github.com/chrissnell/circadian/internal/log"
	"github.com/felixge/httpsnoop"
)

// requestLogger logs every request with its status, size and duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		log.LogHTTPRequest(r.Method, r.URL.Path, m.Code, m.Duration, m.Written, r.RemoteAddr, r.UserAgent())
	})
}
