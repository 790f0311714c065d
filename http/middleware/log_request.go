package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/logger"
)

// MaskedValue replaces the values of query parameters LogRequest scrubs.
const MaskedValue = "xxxxxxx"

var maskedParams = []string{"password", "token"}

// LogRequest logs the originating IP address, method, requested URL, status, size and duration of a request
// using the enclosed implementation of logger.Logger once the request has been handled.
//
// LogRequest scrubs the values for the following query parameters:
// - password
// - token
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, h, func(_ io.Writer, p handlers.LogFormatterParams) {
			strs := make([]string, 0, 6)
			if ip, ok := p.Request.Context().Value(trailhead.IpAddrKey).(string); ok && ip != "" {
				strs = append(strs, ip)
			}

			strs = append(
				strs,
				p.Request.Method,
				scrubbedURI(&p.URL),
				fmt.Sprint(p.StatusCode),
				fmt.Sprintf("%dB", p.Size),
				time.Since(p.TimeStamp).Round(time.Microsecond).String(),
			)

			var lc *logger.LogContext
			if id, ok := p.Request.Context().Value(trailhead.RequestIDKey).(string); ok && id != "" {
				lc = &logger.LogContext{RequestID: id}
			}

			ls.Info(strings.Join(strs, " "), lc)
		})
	}
}

// scrubbedURI is the path and query of u with maskedParams replaced by MaskedValue.
func scrubbedURI(u *url.URL) string {
	q := u.Query()
	for _, key := range maskedParams {
		if q.Has(key) {
			q.Set(key, MaskedValue)
		}
	}

	if len(q) == 0 {
		return u.Path
	}

	return u.Path + "?" + q.Encode()
}
