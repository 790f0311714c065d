package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/trailhead"
)

// ReportPanic wraps handlers in sentryhttp.Handler in order to report panics to Sentry.
// The panic is raised again afterwards, so Recover still answers the request.
//
// In development, NoopAdapter returns and this middleware does nothing.
func ReportPanic(env trailhead.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return sh.Handle
}
