/*
Package router defines how requests reach the handlers of a trailhead app.

A [*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
A [resp.HandlerFunc] is the function called when a request matches a Route:
it returns the [*resp.Response] to send, which the Router's [*resp.Responder] writes.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks,
which aid in directing, redirecting, or adding contextual information to a request.
Thus, a [Router] provides conveniences for making a single call to register many logically associated Routes:
[Router.OnEveryRequest] and [Router.HandleRoutes].

Static files are served from an [fs.FS] with [Router.Static].
*/
package router
