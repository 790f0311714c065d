package middleware

import (
	"bytes"
	"crypto/sha256"
	"io"
	"maps"
	"net/http"

	"github.com/xy-planning-network/trailhead/http/resp"
)

const (
	IdempotencyHeader = "Idempotency-Key"
)

var (
	_            http.ResponseWriter = (*replayWriter)(nil)
	_            http.Flusher        = (*replayWriter)(nil)
	defaultCache                     = NewReplayMap()
)

// Idempotent returns a middleware.Adapter that enables features
// of idempotency on a POST endpoint.
// GET, DELETE, PUT, & PATCH are idempotent by definition and so pass through untouched.
//
// Idempotent pulls a key (e.g., a UUID v4 string) from request headers
// to base the uniqueness of a POST request around.
//
// If a previous request has not used that key,
// Idempotent pairs all of the following values to the key:
// - a hash of the body of the request
// - the status code, headers and body of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the idempotent request is still processing
//
//   - if the newly requested resource (the URI) does not match the original,
//     Idempotent responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent replays the status code, headers and body saved for the key
//
// Keys are reserved atomically, so concurrent requests sharing a key reach handler once.
// When cache cannot reserve a key, e.g., its backend is down, the request reaches handler unguarded.
//
// If cache is nil, an in-memory ReplayMap is used.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache ReplayCacher) Adapter {
	if cache == nil {
		cache = defaultCache
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				handler.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				respond(w, r, resp.BadRequest().Body("missing "+IdempotencyHeader+" header"))
				return
			}

			body, sum, err := hashBody(r.Body)
			if err != nil {
				respond(w, r, resp.BadRequest().Build())
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			rp := NewReplay(r.URL.RequestURI(), sum)
			prior, reserved, err := cache.Reserve(ctx, key, rp)
			if err != nil {
				// NOTE(dlk): without a cache, requests go through unguarded rather than fail.
				handler.ServeHTTP(w, r)
				return
			}

			if !reserved {
				switch {
				case prior.Status == 0:
					respond(w, r, resp.WithStatus(resp.StatusConflict).Build())
				case prior.URI != rp.URI || !bytes.Equal(prior.Req, sum):
					respond(w, r, resp.UnprocessableEntity().Build())
				default:
					prior.replay(w)
				}

				return
			}

			rw := &replayWriter{w: w, rp: &rp}
			handler.ServeHTTP(rw, r)

			if rp.Status == 0 {
				rp.Status = http.StatusOK
			}

			cache.Set(ctx, key, rp)
		})
	}
}

// hashBody reads all of rc, returning what was read and its SHA-256 sum.
func hashBody(rc io.ReadCloser) ([]byte, []byte, error) {
	if rc == nil {
		sum := sha256.Sum256(nil)
		return nil, sum[:], nil
	}

	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, err
	}

	sum := sha256.Sum256(b)
	return b, sum[:], nil
}

// A Replay is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
//
// All fields are exported so a Replay can be gob encoded.
type Replay struct {
	Body   []byte
	Header http.Header
	Req    []byte
	Status int
	URI    string
}

// NewReplay constructs a new Replay for a request to uri whose body hashed to hashedBody.
func NewReplay(uri string, hashedBody []byte) Replay {
	return Replay{URI: uri, Req: hashedBody}
}

// replay writes the saved response to w.
func (rp Replay) replay(w http.ResponseWriter) {
	maps.Copy(w.Header(), rp.Header)
	w.WriteHeader(rp.Status)
	w.Write(rp.Body)
}

// A replayWriter pairs a Replay with an http.ResponseWriter
// so both can be written to by an HTTP handler.
type replayWriter struct {
	rp *Replay
	w  http.ResponseWriter
}

// Header returns the http.Header of the underlying http.ResponseWriter.
func (rw *replayWriter) Header() http.Header { return rw.w.Header() }

// Write writes the bytes to the underlying http.ResponseWriter and the Replay.
func (rw *replayWriter) Write(b []byte) (int, error) {
	if rw.rp.Status == 0 {
		rw.WriteHeader(http.StatusOK)
	}

	n, err := rw.w.Write(b)
	rw.rp.Body = append(rw.rp.Body, b[:n]...)
	return n, err
}

// WriteHeader copies the status code and headers about to be written to the Replay
// before actually writing the status code.
func (rw *replayWriter) WriteHeader(s int) {
	if rw.rp.Status != 0 {
		return
	}

	rw.rp.Status = s
	rw.rp.Header = rw.w.Header().Clone()
	rw.w.WriteHeader(s)
}

// Flush flushes the underlying http.ResponseWriter, if it can be.
func (rw *replayWriter) Flush() {
	if f, ok := rw.w.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying http.ResponseWriter to http.ResponseController.
func (rw *replayWriter) Unwrap() http.ResponseWriter { return rw.w }
