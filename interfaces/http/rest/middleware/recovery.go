package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"devops-backend/internal/observability"
	"devops-backend/pkg/api"

	"go.uber.org/zap"
)

// Recovery is the global exception handler. Any panic escaping a handler is
// counted by kind, logged with the request's correlation id, and converted to
// a fixed-shape 500 body. Internal details never reach the caller.
func Recovery(logger *zap.Logger, collector *observability.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				kind := fmt.Sprintf("%T", rec)
				collector.HTTPErrors.WithLabelValues(kind).Inc()

				requestID := RequestIDFromContext(r.Context())
				if requestID == "" {
					requestID = r.Header.Get("X-Request-ID")
				}

				logger.Error("unhandled_error",
					zap.String("request_id", requestID),
					zap.String("type", kind),
					zap.Any("error", rec),
					zap.Stack("stacktrace"),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(api.InternalErrorResponse{
					Error:     "Internal Server Error",
					RequestID: requestID,
					Detail:    "An unexpected error occurred",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
