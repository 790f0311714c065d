/*
Package ranger initializes and manages a trailhead app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [trailhead.Config],
most often the one [trailhead.LoadConfig] reads from the environment.

A [Ranger] embeds a [*router.Router] whose handlers return a [*resp.Response].
Every request passes through these middlewares, in order:
[middleware.Recover], [middleware.ReportPanic], [middleware.InjectIPAddress],
[middleware.RateLimit], [middleware.RequestID], [middleware.LogRequest], [middleware.CORS],
[middleware.ForceHTTPS] when BASE_URL is served over HTTPS,
and [middleware.InjectSession] when sessions are configured.

Views named by handlers are resolved from TEMPLATE_DIR,
falling back to the "error" and "maintenance" views ranger embeds.
Files in ASSETS_DIR are served under the directory's base name, e.g., /assets/.

[*Ranger.Guide] begins a trailhead app's web server.
Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown]
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a trailhead app through environment variables,
set in a file called ".env" found at the same directory the application is executed from.

Here are the available environment variables.
  - ADDR: the address the web server listens on; default: :8080
  - ASSETS_DIR: the directory static files are served from; default: assets
  - BASE_URL: the base URL the application runs on; default: http://localhost:8080
  - ENVIRONMENT: the environment the application is running in; cf. [trailhead.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: answer every request with 503 Service Unavailable; default: false
  - REDIS_URI: the Redis server to store sessions in instead of cookies
  - REDIS_PASSWORD: the password authenticating to REDIS_URI
  - SENTRY_DSN: where to report errors and panics to
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_NAME: the name of the cookie sessions are stored under; default: trailhead
  - SHUTDOWN_TIMEOUT: how long - as understood by [time.ParseDuration] - open requests have to finish on shutdown; default: 10s
  - TEMPLATE_DIR: the directory view templates are read from; default: tmpl
*/
package ranger
