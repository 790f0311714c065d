package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/resp"
	"golang.org/x/time/rate"
)

const (
	defaultBurst     = 20
	defaultLimit     = rate.Limit(5)
	visitorTTL       = 60 * time.Minute
	cleanupFrequency = time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst   int
	limit   rate.Limit
	cleaned time.Time
	val     map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors whose Visitors are limited to 5 requests every second with bursts of up to 20.
func NewVisitors() *Visitors { return NewVisitorsWithLimit(defaultLimit, defaultBurst) }

// NewVisitorsWithLimit constructs a *Visitors whose Visitors are limited to limit requests every second
// with bursts of up to burst.
func NewVisitorsWithLimit(limit rate.Limit, burst int) *Visitors {
	return &Visitors{burst: burst, limit: limit, cleaned: time.Now(), val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len is the number of Visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// Cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
//
// Calls more frequent than once a minute do nothing.
func (vs *Visitors) Cleanup() {
	vs.Lock()
	defer vs.Unlock()

	if time.Since(vs.cleaned) < cleanupFrequency {
		return
	}

	vs.cleaned = time.Now()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler.
// Visitors are identified by the IP address stashed under trailhead.IpAddrKey,
// or, failing that, by GetIPAddress.
//
// A Visitor exceeding their limit is answered with 429 Too Many Requests
// and a "Retry-After" header.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := r.Context().Value(trailhead.IpAddrKey).(string)
			if !ok || ip == "" {
				ip = GetIPAddress(r.Header)
			}

			defer visitors.Cleanup()

			lim := visitors.Fetch(ip).Limiter
			if !lim.Allow() {
				retry := 1
				if lim.Limit() > 0 {
					retry = int(math.Ceil(1 / float64(lim.Limit())))
				}

				res := resp.WithStatus(resp.StatusTooManyRequests).
					Header("Retry-After", strconv.Itoa(retry)).
					Body(http.StatusText(http.StatusTooManyRequests))
				respond(w, r, res)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
