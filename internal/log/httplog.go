package log

import (
	"time"
)

// LogHTTPRequest writes one structured entry per served request. Server
// errors are logged at error level, everything else at info.
func LogHTTPRequest(method, path string, status int, duration time.Duration, size int64, remoteAddr, userAgent string) {
	ensure()

	fields := []interface{}{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size", size,
		"remote_addr", remoteAddr,
		"user_agent", userAgent,
	}

	if status >= 500 {
		log.Errorw("http request", fields...)
		return
	}
	log.Infow("http request", fields...)
}
