package resp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	responderFrames = 1

	// headersAttribute keys the headers set on the http.ResponseWriter before the Exchange was built.
	headersAttribute = "trailhead.resp.headers"
)

// A HandlerFunc answers an *http.Request with a *Response.
//
// Returning an error instead hands it to the Responder,
// which answers it with the Status of a *StatusError or 500 Internal Server Error.
type HandlerFunc func(*http.Request) (*Response, error)

// Responder maintains reusable pieces for responding to HTTP requests:
// the codec.MessageWriters, view.Resolvers and session.SessionStorer every exchange.Exchange it builds carries.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
type Responder struct {
	logger    logger.Logger
	writers   []codec.MessageWriter
	resolvers []view.Resolver
	sessions  session.SessionStorer

	// View to render when answering an error, if any.
	errView string
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
// Without WithWriters, codec.DefaultWriters are used.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{writers: codec.DefaultWriters()}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// Exchange constructs the *exchange.Exchange for w and r, carrying what the Responder was configured with.
func (doer *Responder) Exchange(w http.ResponseWriter, r *http.Request) *exchange.Exchange {
	opts := make([]exchange.OptFn, 0, 1)
	if doer.sessions != nil {
		opts = append(opts, exchange.WithSessions(doer.sessions))
	}

	ex := exchange.New(w, r, opts...)
	ex.SetAttribute(headersAttribute, w.Header().Clone())
	codec.SetWriters(ex, doer.writers...)
	view.SetResolvers(ex, doer.resolvers...)
	return ex
}

// Handle adapts fn into an http.Handler.
func (doer *Responder) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ex := doer.Exchange(w, r)

		res, err := fn(r)
		if err != nil {
			doer.Err(ex, err)
			return
		}

		doer.Respond(ex, res)
	})
}

// Respond writes res to ex, answering any failure to do so with Err.
func (doer *Responder) Respond(ex *exchange.Exchange, res *Response) {
	if res == nil {
		res = NoContent().Build()
	}

	if err := res.Write(ex.Context(), ex); err != nil {
		doer.Err(ex, err)
	}
}

// resetHeaders drops what writing a Response added to ex's headers,
// keeping those set before the Exchange was built, e.g., by middleware.
func resetHeaders(ex *exchange.Exchange) {
	h := ex.Response.Header()
	for k := range h {
		h.Del(k)
	}

	val, _ := ex.Attribute(headersAttribute)
	if prior, ok := val.(http.Header); ok {
		for k, vs := range prior {
			h[k] = append([]string(nil), vs...)
		}
	}
}

// Err logs err and, when nothing has been sent yet, answers it.
// Headers set before the Exchange was built survive; those the handler's Response added do not.
//
// The status comes from a *StatusError wrapped by err, or is 500 Internal Server Error.
// With WithErrView, the error view renders a view.Model holding the "status" and "error";
// otherwise the status text is sent as plain text.
func (doer *Responder) Err(ex *exchange.Exchange, err error) {
	status := StatusInternalServerError
	var se *StatusError
	if errors.As(err, &se) && se.Status.Valid() == nil {
		status = se.Status
	}

	lc := &logger.LogContext{Error: err, Request: ex.Request, RequestID: ex.RequestID()}
	switch {
	case errors.Is(err, context.Canceled):
		doer.logger.Debug("request canceled", lc)
	case status >= StatusInternalServerError:
		doer.logger.Error(err.Error(), lc)
	default:
		doer.logger.Warn(err.Error(), lc)
	}

	if ex.Response.Committed() {
		return
	}

	resetHeaders(ex)

	if doer.errView != "" {
		model := view.Model{"status": status, "error": http.StatusText(status.Code())}
		res := WithStatus(status).Render(doer.errView, model)
		if nested := res.Write(context.WithoutCancel(ex.Context()), ex); nested != nil {
			doer.logger.Error(fmt.Sprintf("cannot render %s: %s", doer.errView, nested), lc)
		}

		if ex.Response.Committed() {
			return
		}
	}

	ex.Response.SetStatus(status.Code())
	ex.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ex.Response.Header().Set("X-Content-Type-Options", "nosniff")
	fmt.Fprintln(ex.Response, http.StatusText(status.Code()))
}
