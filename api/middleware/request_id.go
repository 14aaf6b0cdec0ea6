package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation id, honoring an inbound
// header when the caller supplies one.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			ctx := withRequestID(r.Context(), id)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}

			w.Header().Set(requestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
