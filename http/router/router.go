package router

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
)

const staticMaxAge = 30 * 24 * time.Hour

// ErrNoFile means a request for a static file did not match one.
var ErrNoFile = errors.New("no such file")

// A Route maps a path and HTTP method to a [resp.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     resp.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to the [resp.HandlerFunc] of matching Routes,
// writing the [*resp.Response] they return with a [*resp.Responder].
type Router struct {
	env           trailhead.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	responder     *resp.Responder
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// If responder is nil, a [*resp.Responder] with default settings is used.
// logReq applies to every request, including those for static files or matching no Route.
func New(env trailhead.Environment, responder *resp.Responder, logReq middleware.Adapter) *Router {
	if responder == nil {
		responder = resp.NewResponder()
	}

	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{env: env, logReq: logReq, responder: responder, r: mux.NewRouter()}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler resp.HandlerFunc) {
	r.r.PathPrefix("/").Handler(r.chain(handler, r.everyReqStack...))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [resp.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler resp.HandlerFunc) {
	r.r.NotFoundHandler = r.chain(handler, r.logReq)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares))
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, r.chain(route.Handler, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Static serves the files in fsys for requests prefixed by prefix,
// e.g., r.Static("/assets/", os.DirFS("client/public")).
//
// Files are answered as [resp.ResourceBody] so their content type follows their extension,
// and may be cached publicly for 30 days.
// Requests for directories or missing files are answered with 404 Not Found.
func (r *Router) Static(prefix string, fsys fs.FS) {
	r.r.PathPrefix(prefix).Methods(http.MethodGet, http.MethodHead).Handler(r.chain(staticHandler(prefix, fsys), r.logReq))
}

// SubrouterHost constructs a [*Router] that handles requests to the host.
func (r *Router) SubrouterHost(host string) *Router {
	return &Router{
		env:           r.env,
		everyReqStack: r.everyReqStack,
		logReq:        r.logReq,
		responder:     r.responder,
		r:             r.r.Host(host).Subrouter(),
	}
}

// Subrouter constructs a [*Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		env:           r.env,
		everyReqStack: r.everyReqStack,
		logReq:        r.logReq,
		responder:     r.responder,
		r:             r.r.PathPrefix(prefix).Subrouter(),
	}
}

// chain adapts handler with the Responder, reports its panics and applies the middlewares.
func (r *Router) chain(handler resp.HandlerFunc, mws ...middleware.Adapter) http.Handler {
	return middleware.Chain(middleware.ReportPanic(r.env)(r.responder.Handle(handler)), mws...)
}

func staticHandler(prefix string, fsys fs.FS) resp.HandlerFunc {
	return func(req *http.Request) (*resp.Response, error) {
		name := path.Clean(strings.TrimPrefix(req.URL.Path, prefix))
		name = strings.TrimPrefix(name, "/")
		if !fs.ValidPath(name) {
			return nil, resp.NewStatusError(resp.StatusNotFound, ErrNoFile)
		}

		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			return nil, resp.NewStatusError(resp.StatusNotFound, ErrNoFile)
		}

		return resp.OK().
			CacheControl(resp.MaxAge(staticMaxAge).Public()).
			LastModified(info.ModTime()).
			Resource(codec.NewFSResource(fsys, name)), nil
	}
}
