package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
)

// InjectSession stores the session.Session associated with the *http.Request in *http.Request.Context
// under trailhead.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}

			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), trailhead.SessionKey, s)))
		})
	}
}
