package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/trailhead"
)

// RequestIDHeader carries the request ID to and from clients.
const RequestIDHeader = "X-Request-Id"

// RequestID stashes a UUID under trailhead.RequestIDKey in the request context
// and echoes it in the RequestIDHeader of the response.
//
// A valid UUID sent by the client in RequestIDHeader is reused,
// so proxies in front of the app can correlate their logs with it.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			ctx := context.WithValue(r.Context(), trailhead.RequestIDKey, id.String())
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
