package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
	"golang.org/x/text/language"
)

const (
	// MessageWritersAttribute keys the supplier of message writers for an Exchange.
	MessageWritersAttribute = "trailhead.messageWriters"

	// ViewResolversAttribute keys the supplier of view resolvers for an Exchange.
	ViewResolversAttribute = "trailhead.viewResolvers"
)

var (
	ErrNoSession = errors.New("no session store")

	// DefaultLocale is used when a request does not state a usable Accept-Language.
	DefaultLocale = language.English
)

// An Exchange is the per-request context for responding to an *http.Request.
//
// An Exchange belongs to a single in-flight request and is not safe for concurrent use.
type Exchange struct {
	Request  *http.Request
	Response *ServerResponse

	attrs    map[string]any
	sessions session.SessionStorer
}

// An OptFn configures an *Exchange when constructing it.
type OptFn func(*Exchange)

// WithAttribute sets the key-value pair in the Exchange's attribute store.
func WithAttribute(key string, val any) OptFn {
	return func(e *Exchange) {
		e.attrs[key] = val
	}
}

// WithSessions sets the session.SessionStorer the Exchange retrieves sessions from.
func WithSessions(s session.SessionStorer) OptFn {
	return func(e *Exchange) {
		e.sessions = s
	}
}

// New constructs an *Exchange answering r through w.
func New(w http.ResponseWriter, r *http.Request, opts ...OptFn) *Exchange {
	e := &Exchange{
		Request:  r,
		Response: NewServerResponse(w),
		attrs:    make(map[string]any),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Attribute retrieves the value stored under key.
func (e *Exchange) Attribute(key string) (any, bool) {
	val, ok := e.attrs[key]
	return val, ok
}

// SetAttribute stores val under key, replacing any previous value.
func (e *Exchange) SetAttribute(key string, val any) {
	e.attrs[key] = val
}

// Context returns the context.Context of the request.
func (e *Exchange) Context() context.Context {
	if e.Request == nil {
		return context.Background()
	}

	return e.Request.Context()
}

// Locale returns the language the client prefers most
// according to the request's Accept-Language header,
// or DefaultLocale.
func (e *Exchange) Locale() language.Tag {
	if e.Request == nil {
		return DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(e.Request.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 || tags[0] == language.Und {
		return DefaultLocale
	}

	return tags[0]
}

// RequestID returns the ID stashed in the request context under trailhead.RequestIDKey, if any.
func (e *Exchange) RequestID() string {
	id, _ := e.Context().Value(trailhead.RequestIDKey).(string)
	return id
}

// Session retrieves the session for the request.
//
// If the Exchange was not constructed with WithSessions, ErrNoSession returns.
func (e *Exchange) Session() (session.Session, error) {
	if e.sessions == nil {
		return session.Session{}, fmt.Errorf("%w", ErrNoSession)
	}

	return e.sessions.GetSession(e.Request)
}
