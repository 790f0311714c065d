package exchange

import (
	"errors"
	"net/http"
)

// A ServerResponse tracks what has been written through an http.ResponseWriter.
//
// Until the first byte is written, or Commit or Flush is called,
// the status and headers can still change.
type ServerResponse struct {
	w         http.ResponseWriter
	status    int
	committed bool
	written   int64
}

// NewServerResponse wraps w.
func NewServerResponse(w http.ResponseWriter) *ServerResponse {
	return &ServerResponse{w: w, status: http.StatusOK}
}

// Header returns the headers to be sent.
// Changes made after the ServerResponse is committed are ignored by the client.
func (r *ServerResponse) Header() http.Header { return r.w.Header() }

// SetStatus sets the status code to send.
// It reports whether the status could still be changed.
func (r *ServerResponse) SetStatus(code int) bool {
	if r.committed {
		return false
	}

	r.status = code
	return true
}

// Status returns the status code that is, or will be, sent.
func (r *ServerResponse) Status() int { return r.status }

// Committed asserts whether the status and headers have been sent.
func (r *ServerResponse) Committed() bool { return r.committed }

// Written returns the number of body bytes written.
func (r *ServerResponse) Written() int64 { return r.written }

// Commit sends the status and headers, if not already sent.
func (r *ServerResponse) Commit() {
	if r.committed {
		return
	}

	r.committed = true
	r.w.WriteHeader(r.status)
}

// Write commits the ServerResponse and writes p to the body.
func (r *ServerResponse) Write(p []byte) (int, error) {
	r.Commit()
	n, err := r.w.Write(p)
	r.written += int64(n)
	return n, err
}

// Flush commits the ServerResponse and pushes buffered body bytes to the client
// when the underlying http.ResponseWriter supports it.
func (r *ServerResponse) Flush() error {
	r.Commit()
	if err := http.NewResponseController(r.w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}

	return nil
}

// Unwrap returns the underlying http.ResponseWriter.
func (r *ServerResponse) Unwrap() http.ResponseWriter { return r.w }
