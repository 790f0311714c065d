/*
The middleware package defines what a middleware is in trailhead and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- Idempotent
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- Recover
- ReportPanic
- RequestID

Middlewares answering a request themselves, e.g. RateLimit, do so with a *resp.Response,
so their answers are negotiated like any handler's.

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.Recover(log),
		middleware.ReportPanic(env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
	}
*/
package middleware
