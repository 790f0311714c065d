package resp

import (
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/media"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/stream"
)

// A Builder configures the status and headers of a Response before a terminal method
// picks its Body and returns it.
//
// Every configuration method returns the same *Builder, so calls chain.
// A Builder is not safe for concurrent use.
// Once a terminal method returns, the Builder is spent: calling any method on it panics with ErrBuilderUsed.
type Builder struct {
	status Status
	header http.Header
	used   bool
}

// WithStatus starts a *Builder at status.
func WithStatus(status Status) *Builder {
	return &Builder{status: status, header: make(http.Header)}
}

// WithStatusCode starts a *Builder at code,
// failing with ErrInvalidStatus when code is not a known status.
func WithStatusCode(code int) (*Builder, error) {
	status, err := ParseStatus(code)
	if err != nil {
		return nil, err
	}

	return WithStatus(status), nil
}

// From starts a *Builder with other's status and a copy of its headers.
// other's body is not carried over.
func From(other *Response) *Builder {
	return &Builder{status: other.status, header: http.Header(other.header).Clone()}
}

// OK starts a *Builder at 200 OK.
func OK() *Builder { return WithStatus(StatusOK) }

// Created starts a *Builder at 201 Created, locating the new resource at location.
func Created(location *url.URL) *Builder { return WithStatus(StatusCreated).Location(location) }

// Accepted starts a *Builder at 202 Accepted.
func Accepted() *Builder { return WithStatus(StatusAccepted) }

// NoContent starts a *Builder at 204 No Content.
func NoContent() *Builder { return WithStatus(StatusNoContent) }

// SeeOther starts a *Builder at 303 See Other, redirecting to location.
func SeeOther(location *url.URL) *Builder { return WithStatus(StatusSeeOther).Location(location) }

// TemporaryRedirect starts a *Builder at 307 Temporary Redirect, redirecting to location.
func TemporaryRedirect(location *url.URL) *Builder {
	return WithStatus(StatusTemporaryRedirect).Location(location)
}

// PermanentRedirect starts a *Builder at 308 Permanent Redirect, redirecting to location.
func PermanentRedirect(location *url.URL) *Builder {
	return WithStatus(StatusPermanentRedirect).Location(location)
}

// BadRequest starts a *Builder at 400 Bad Request.
func BadRequest() *Builder { return WithStatus(StatusBadRequest) }

// NotFound starts a *Builder at 404 Not Found.
func NotFound() *Builder { return WithStatus(StatusNotFound) }

// UnprocessableEntity starts a *Builder at 422 Unprocessable Entity.
func UnprocessableEntity() *Builder { return WithStatus(StatusUnprocessableEntity) }

// Status sets the status.
func (b *Builder) Status(status Status) *Builder {
	b.check()
	b.status = status
	return b
}

// StatusCode sets the status to code,
// failing with ErrInvalidStatus, and leaving the status as it was, when code is not a known status.
func (b *Builder) StatusCode(code int) (*Builder, error) {
	b.check()
	status, err := ParseStatus(code)
	if err != nil {
		return b, err
	}

	b.status = status
	return b, nil
}

// Header appends values to those already set under name.
func (b *Builder) Header(name string, values ...string) *Builder {
	b.check()
	for _, v := range values {
		b.header.Add(name, v)
	}

	return b
}

// Headers replaces every header with a copy of h.
func (b *Builder) Headers(h http.Header) *Builder {
	b.check()
	b.header = h.Clone()
	if b.header == nil {
		b.header = make(http.Header)
	}

	return b
}

// ContentLength sets the Content-Length to n bytes.
func (b *Builder) ContentLength(n int64) *Builder {
	b.check()
	b.header.Set("Content-Length", strconv.FormatInt(n, 10))
	return b
}

// ContentType sets the Content-Type to mt.
// Writing the Response only considers writers able to produce mt.
func (b *Builder) ContentType(mt media.MediaType) *Builder {
	b.check()
	b.header.Set("Content-Type", mt.String())
	return b
}

// ETag sets the entity tag, wrapping tag in double quotes unless it is quoted already or weak.
func (b *Builder) ETag(tag string) *Builder {
	b.check()
	b.header.Set("ETag", quoteETag(tag))
	return b
}

// LastModified sets Last-Modified to t as an HTTP date.
// HTTP dates do not carry sub-second precision.
func (b *Builder) LastModified(t time.Time) *Builder {
	b.check()
	b.header.Set("Last-Modified", t.UTC().Truncate(time.Second).Format(http.TimeFormat))
	return b
}

// CacheControl sets Cache-Control to cc, removing it when cc has no directives.
func (b *Builder) CacheControl(cc CacheControl) *Builder {
	b.check()
	if cc.IsZero() {
		b.header.Del("Cache-Control")
		return b
	}

	b.header.Set("Cache-Control", cc.String())
	return b
}

// VaryBy adds names to the headers responses vary by, skipping those already present.
func (b *Builder) VaryBy(names ...string) *Builder {
	b.check()
	vary := Header(b.header).Vary()
	for _, name := range names {
		name = http.CanonicalHeaderKey(strings.TrimSpace(name))
		if name != "" && !slices.Contains(vary, name) {
			vary = append(vary, name)
		}
	}

	if len(vary) == 0 {
		return b
	}

	b.header.Set("Vary", strings.Join(vary, ", "))
	return b
}

// Allow sets the allowed methods to methods, removing Allow when there are none.
func (b *Builder) Allow(methods ...string) *Builder {
	b.check()
	b.header.Set("Allow", strings.Join(methods, ","))
	allow := Header(b.header).Allow()
	if len(allow) == 0 {
		b.header.Del("Allow")
		return b
	}

	b.header.Set("Allow", strings.Join(allow, ", "))
	return b
}

// Location sets Location to u, removing it when u is nil.
func (b *Builder) Location(u *url.URL) *Builder {
	b.check()
	if u == nil {
		b.header.Del("Location")
		return b
	}

	b.header.Set("Location", u.String())
	return b
}

// Build returns a *Response without a body.
func (b *Builder) Build() *Response { return b.finish(EmptyBody{}) }

// BuildWith returns a *Response whose body is written once p completes.
// Whatever p emits is discarded; no body bytes are written.
func (b *Builder) BuildWith(p stream.Publisher) *Response {
	if p == nil {
		p = stream.Empty()
	}

	return b.finish(PublisherBody{Publisher: p})
}

// Body returns a *Response writing value.
func (b *Builder) Body(value any) *Response { return b.finish(ValueBody{Value: value}) }

// Stream returns a *Response writing the elements p emits,
// each of which is described by elem.
func (b *Builder) Stream(p stream.Publisher, elem reflect.Type) *Response {
	if p == nil {
		p = stream.Empty()
	}

	if elem == nil {
		elem = stream.TypeOf[any]()
	}

	return b.finish(PublisherBody{Publisher: p, Element: elem})
}

// Resource returns a *Response writing the bytes of rsc.
func (b *Builder) Resource(rsc codec.Resource) *Response {
	return b.finish(ResourceBody{Resource: rsc})
}

// SSE returns a *Response writing the events p emits as a text/event-stream.
func (b *Builder) SSE(events stream.Publisher) *Response {
	if events == nil {
		events = stream.Empty()
	}

	return b.finish(EventStreamBody{Events: events})
}

// Render returns a *Response rendering the view called name with model.
func (b *Builder) Render(name string, model view.Model) *Response {
	return b.finish(Rendering{Name: name, Model: model})
}

// RenderObjects returns a *Response rendering the view called name
// with a view.Model built from objs by view.NewModel.
func (b *Builder) RenderObjects(name string, objs ...any) *Response {
	return b.Render(name, view.NewModel(objs...))
}

func (b *Builder) finish(body Body) *Response {
	b.check()
	b.used = true
	if b.status == 0 {
		b.status = StatusOK
	}

	return &Response{status: b.status, header: Header(b.header), body: body}
}

// check panics once b is spent and readies a zero-value Builder for use.
func (b *Builder) check() {
	if b.used {
		panic(ErrBuilderUsed)
	}

	if b.header == nil {
		b.header = make(http.Header)
	}
}
