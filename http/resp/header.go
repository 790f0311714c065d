package resp

import (
	"net/http"
	"net/textproto"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/trailhead/http/media"
)

// A Header is the set of header fields of a Response,
// with typed accessors for the fields a Builder sets.
type Header http.Header

// Get returns the first value for key.
func (h Header) Get(key string) string { return http.Header(h).Get(key) }

// Values returns every value for key.
func (h Header) Values(key string) []string { return http.Header(h).Values(key) }

// Clone returns a deep copy of h.
func (h Header) Clone() Header {
	if h == nil {
		return Header{}
	}

	return Header(http.Header(h).Clone())
}

// ContentLength returns the Content-Length, or -1 when it is absent or malformed.
func (h Header) ContentLength() int64 {
	n, err := strconv.ParseInt(h.Get("Content-Length"), 10, 64)
	if err != nil || n < 0 {
		return -1
	}

	return n
}

// ContentType returns the parsed Content-Type, reporting false when it is absent or malformed.
func (h Header) ContentType() (media.MediaType, bool) {
	mt, err := media.Parse(h.Get("Content-Type"))
	if err != nil {
		return media.MediaType{}, false
	}

	return mt, true
}

// ETag returns the entity tag, quotes included.
func (h Header) ETag() string { return h.Get("ETag") }

// LastModified returns the Last-Modified time, or the zero-value time.Time when it is absent or malformed.
func (h Header) LastModified() time.Time {
	t, err := http.ParseTime(h.Get("Last-Modified"))
	if err != nil {
		return time.Time{}
	}

	return t
}

// CacheControl returns the Cache-Control directives as written.
func (h Header) CacheControl() string {
	return strings.Join(h.Values("Cache-Control"), ", ")
}

// Vary returns the header names responses vary by, in order.
func (h Header) Vary() []string { return tokens(h.Values("Vary"), textproto.CanonicalMIMEHeaderKey) }

// Allow returns the allowed methods, de-duplicated and sorted.
func (h Header) Allow() []string {
	methods := tokens(h.Values("Allow"), strings.ToUpper)
	slices.Sort(methods)
	return methods
}

// Location returns the Location as a *url.URL, or nil when it is absent or malformed.
func (h Header) Location() *url.URL {
	loc := h.Get("Location")
	if loc == "" {
		return nil
	}

	u, err := url.Parse(loc)
	if err != nil {
		return nil
	}

	return u
}

// tokens splits comma-separated values, normalizing each with norm and dropping empties and repeats.
func tokens(values []string, norm func(string) string) []string {
	out := make([]string, 0)
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			tok = norm(strings.TrimSpace(tok))
			if tok == "" || slices.Contains(out, tok) {
				continue
			}

			out = append(out, tok)
		}
	}

	return out
}

// quoteETag wraps tag in double quotes unless it is quoted already or a weak validator.
func quoteETag(tag string) string {
	if strings.HasPrefix(tag, `"`) || strings.HasPrefix(tag, `W/"`) {
		return tag
	}

	return `"` + tag + `"`
}
