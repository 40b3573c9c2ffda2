// Package requesttime stamps each request with a single "now" so logs and
// handlers within one request agree on the time.
package requesttime

import (
	"net/http"
	"time"

	"mergington/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
