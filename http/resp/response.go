package resp

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/trailhead/http/exchange"
)

// A Response is a status, headers and a Body, frozen when a Builder built it.
// A *Response is safe to write to any number of exchanges, concurrently or not.
type Response struct {
	status Status
	header Header
	body   Body
}

// Status returns the status the Response is written with.
func (r *Response) Status() Status { return r.status }

// Header returns a copy of the headers the Response is written with.
func (r *Response) Header() Header { return r.header.Clone() }

// Body returns how the Response produces its body.
func (r *Response) Body() Body { return r.body }

// Value returns what the Body holds:
// the value of a ValueBody, the publisher of a PublisherBody or EventStreamBody,
// the resource of a ResourceBody, the Rendering itself, or nil for an EmptyBody.
func (r *Response) Value() any {
	switch body := r.body.(type) {
	case ValueBody:
		return body.Value
	case PublisherBody:
		return body.Publisher
	case ResourceBody:
		return body.Resource
	case EventStreamBody:
		return body.Events
	case Rendering:
		return body
	default:
		return nil
	}
}

// WriteTo writes the Response to ex without blocking.
//
// Headers, writer negotiation and view resolution happen before WriteTo returns;
// a failure among them completes the returned *Completion immediately.
// Producing and writing the body happens on its own goroutine.
// Cancelling ctx or the *Completion cancels the body's publisher.
func (r *Response) WriteTo(ctx context.Context, ex *exchange.Exchange) *Completion {
	ctx, cancel := context.WithCancel(ctx)
	c := &Completion{done: make(chan struct{}), cancel: cancel}

	write, err := r.prepare(ctx, ex)
	if err != nil {
		c.finish(err)
		return c
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				c.finish(fmt.Errorf("%w: %v", ErrPanic, p))
			}
		}()

		c.finish(write(ctx))
	}()

	return c
}

// Write writes the Response to ex, blocking until it is written.
func (r *Response) Write(ctx context.Context, ex *exchange.Exchange) error {
	return r.WriteTo(ctx, ex).Wait()
}

// A Completion tracks a Response being written.
type Completion struct {
	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// Done is closed once writing finishes, successfully or not.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Err returns why writing failed, or nil while writing has not finished or when it succeeded.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until writing finishes and returns why it failed, if it did.
func (c *Completion) Wait() error {
	<-c.done
	return c.err
}

// Cancel stops writing, cancelling the body's publisher if it is still producing.
func (c *Completion) Cancel() { c.cancel() }

func (c *Completion) finish(err error) {
	c.err = err
	c.cancel()
	close(c.done)
}
