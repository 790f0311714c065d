package resp

import (
	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithErrView sets the view to render when answering an error.
func WithErrView(name string) ResponderOptFn {
	return func(d *Responder) {
		d.errView = name
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithResolvers sets the view.Resolvers consulted, in order, when rendering views.
func WithResolvers(resolvers ...view.Resolver) ResponderOptFn {
	return func(d *Responder) {
		d.resolvers = resolvers
	}
}

// WithSessions sets the session.SessionStorer exchanges retrieve sessions from.
func WithSessions(s session.SessionStorer) ResponderOptFn {
	return func(d *Responder) {
		d.sessions = s
	}
}

// WithWriters sets the codec.MessageWriters negotiated between, in order, when writing bodies.
func WithWriters(writers ...codec.MessageWriter) ResponderOptFn {
	return func(d *Responder) {
		d.writers = writers
	}
}
