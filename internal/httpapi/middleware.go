package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ctxKey is the private type for context keys in this package.
type ctxKey int

const requestIDKey ctxKey = iota

// requestID assigns each request a UUID, honoring an X-Request-ID header
// when the caller supplies one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(req.Context(), requestIDKey, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// RequestIDFrom returns the request's assigned id, or "" when absent.
func RequestIDFrom(req *http.Request) string {
	id, _ := req.Context().Value(requestIDKey).(string)
	return id
}
