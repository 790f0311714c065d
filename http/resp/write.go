package resp

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/stream"
)

var sseType = reflect.TypeOf(codec.ServerSentEvent{})

// A writeFn produces and writes a body.
type writeFn func(ctx context.Context) error

// prepare applies the status and headers to ex and settles how the body gets written.
func (r *Response) prepare(ctx context.Context, ex *exchange.Exchange) (writeFn, error) {
	ex.Response.SetStatus(r.status.Code())
	for k, v := range r.header {
		ex.Response.Header()[k] = slices.Clone(v)
	}

	switch body := r.body.(type) {
	case EmptyBody:
		return commit(ex), nil

	case ValueBody:
		if body.Value == nil {
			return commit(ex), nil
		}

		return r.negotiate(ex, codec.Message{
			Body:    stream.Just(body.Value),
			Element: reflect.TypeOf(body.Value),
			Single:  true,
		}, media.MediaType{}), nil

	case PublisherBody:
		if body.Element == nil {
			return func(ctx context.Context) error {
				if err := stream.Drain(ctx, body.Publisher); err != nil {
					return err
				}

				ex.Response.Commit()
				return nil
			}, nil
		}

		return r.negotiate(ex, codec.Message{Body: body.Publisher, Element: body.Element}, media.MediaType{}), nil

	case ResourceBody:
		if body.Resource == nil {
			return commit(ex), nil
		}

		return r.negotiate(ex, codec.Message{
			Body:    stream.Just(body.Resource),
			Element: reflect.TypeOf(body.Resource),
			Single:  true,
		}, media.MediaType{}), nil

	case EventStreamBody:
		return r.negotiate(ex, codec.Message{Body: body.Events, Element: sseType}, media.TextEventStream), nil

	case Rendering:
		return r.resolve(ctx, ex, body)

	default:
		return nil, fmt.Errorf("unknown body %T", body)
	}
}

// negotiate finds the codec.MessageWriter to write msg with,
// answering 406 Not Acceptable with headers alone when there is none.
//
// fallback constrains the media type to write when the Response has no Content-Type.
func (r *Response) negotiate(ex *exchange.Exchange, msg codec.Message, fallback media.MediaType) writeFn {
	constraint, ok := r.header.ContentType()
	if !ok {
		constraint = fallback
	}

	writers, ok := codec.Writers(ex)
	if !ok {
		writers = slices.Values(codec.DefaultWriters())
	}

	accepted := media.ParseAccept(ex.Request.Header.Get("Accept"))
	w, mt, found := selectWriter(writers, accepted, constraint, msg.Element)
	if !found {
		ex.Response.SetStatus(StatusNotAcceptable.Code())
		ex.Response.Header().Del("Content-Length")
		return commit(ex)
	}

	msg.MediaType = mt
	return func(ctx context.Context) error {
		return w.Write(ctx, msg, ex.Response)
	}
}

// selectWriter walks accepted in order of preference,
// returning the first writer able to write elem as a media type compatible with both the accepted type
// and constraint, when constraint is set.
func selectWriter(
	writers iter.Seq[codec.MessageWriter],
	accepted []media.MediaType,
	constraint media.MediaType,
	elem reflect.Type,
) (codec.MessageWriter, media.MediaType, bool) {
	for _, acc := range accepted {
		for w := range writers {
			for _, producible := range w.WritableMediaTypes() {
				if !constraint.IsZero() {
					if !producible.IsCompatibleWith(constraint) {
						continue
					}

					producible = media.MostSpecific(producible, constraint)
				}

				if !acc.IsCompatibleWith(producible) {
					continue
				}

				mt := media.MostSpecific(acc, producible)
				if !mt.IsConcrete() {
					mt = media.ApplicationOctetStream
				}

				if w.CanWrite(elem, mt) {
					return w, mt, true
				}
			}
		}
	}

	return nil, media.MediaType{}, false
}

// resolve finds the view to render body with,
// failing with ErrViewNotFound when no view.Resolver has it.
func (r *Response) resolve(ctx context.Context, ex *exchange.Exchange, body Rendering) (writeFn, error) {
	resolvers, ok := view.Resolvers(ex)
	if !ok {
		return nil, fmt.Errorf("%w: %q: no view resolvers", ErrViewNotFound, body.Name)
	}

	locale := ex.Locale()
	for resolver := range resolvers {
		v, err := resolver.ResolveViewName(ctx, body.Name, locale)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", body.Name, err)
		}

		if v == nil {
			continue
		}

		contentType, _ := r.header.ContentType()
		return func(ctx context.Context) error {
			if err := v.Render(ctx, body.Model, contentType, ex); err != nil {
				return err
			}

			ex.Response.Commit()
			return nil
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrViewNotFound, body.Name)
}

func commit(ex *exchange.Exchange) writeFn {
	return func(context.Context) error {
		ex.Response.Commit()
		return nil
	}
}
