// Package middleware provides the per-request observability wrapper and the
// global panic handler.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"devops-backend/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey is unexported so other packages cannot collide with our keys.
type contextKey struct {
	name string
}

var requestIDKey = contextKey{"requestID"}

// RequestIDFromContext returns the correlation id assigned to this request,
// or the empty string if the middleware has not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Observability wraps every request with a correlation id, timing, metrics,
// structured start/complete logs, and tracing plus security response headers.
func Observability(logger *zap.Logger, collector *observability.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Reuse an inbound correlation id so callers can propagate their own.
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			collector.ActiveRequests.Inc()
			defer collector.ActiveRequests.Dec()

			logger.Info("request_start",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)

			header := w.Header()
			header.Set("X-Request-ID", requestID)
			header.Set("X-Content-Type-Options", "nosniff")
			header.Set("X-Frame-Options", "DENY")
			header.Set("X-XSS-Protection", "1; mode=block")
			header.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			header.Set("Permissions-Policy", "geolocation=(), microphone=()")

			ww := &timedResponseWriter{ResponseWriter: w, status: http.StatusOK, start: start}
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// The route pattern is only known once routing has happened.
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			duration := time.Since(start)
			collector.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.status)).Inc()
			collector.HTTPDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

			logger.Info("request_complete",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Float64("duration_ms", float64(duration.Microseconds())/1000),
			)
		})
	}
}

// timedResponseWriter captures the response status and stamps X-Response-Time
// just before the headers are flushed, the last moment it can still be set.
type timedResponseWriter struct {
	http.ResponseWriter
	status      int
	start       time.Time
	wroteHeader bool
}

func (w *timedResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = status
	w.Header().Set("X-Response-Time", fmt.Sprintf("%.3f", time.Since(w.start).Seconds()))
	w.ResponseWriter.WriteHeader(status)
}

func (w *timedResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
