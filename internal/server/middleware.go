package server

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// responseWriter wraps http.ResponseWriter to capture the status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// requestLogger logs every request, at warn level for 4xx and error level for 5xx.
func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			latency := time.Since(start)
			fields := []interface{}{
				"status", wrapped.statusCode,
				"method", r.Method,
				"path", r.URL.Path,
				"latency_ms", latency.Milliseconds(),
				"bytes", wrapped.written,
				"client_ip", r.RemoteAddr,
			}
			if id := chimiddleware.GetReqID(r.Context()); id != "" {
				fields = append(fields, "request_id", id)
			}
			if r.URL.RawQuery != "" {
				fields = append(fields, "query", r.URL.RawQuery)
			}

			switch {
			case wrapped.statusCode >= 500:
				logger.Errorw("HTTP request", fields...)
			case wrapped.statusCode >= 400:
				logger.Warnw("HTTP request", fields...)
			default:
				logger.Infow("HTTP request", fields...)
			}
		})
	}
}
