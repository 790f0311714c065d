package stream

import (
	"context"
	"errors"
	"reflect"
)

// ErrStop is returned from a Subscribe callback to stop a Publisher without failing.
var ErrStop = errors.New("stop")

// A Publisher lazily produces elements for a subscriber.
type Publisher interface {
	Subscribe(ctx context.Context, next func(any) error) error
}

// A PublisherFunc adapts a function into a Publisher.
type PublisherFunc func(ctx context.Context, next func(any) error) error

// Subscribe calls fn.
func (fn PublisherFunc) Subscribe(ctx context.Context, next func(any) error) error {
	return fn(ctx, next)
}

// Just publishes each of vals in order.
func Just(vals ...any) Publisher {
	return PublisherFunc(func(ctx context.Context, next func(any) error) error {
		for _, v := range vals {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := next(v); err != nil {
				return stopped(err)
			}
		}

		return nil
	})
}

// Empty completes without publishing anything.
func Empty() Publisher {
	return PublisherFunc(func(ctx context.Context, _ func(any) error) error {
		return ctx.Err()
	})
}

// Fail fails with err without publishing anything.
func Fail(err error) Publisher {
	return PublisherFunc(func(context.Context, func(any) error) error {
		return err
	})
}

// FromChan publishes values received from ch until it is closed.
func FromChan[T any](ch <-chan T) Publisher {
	return PublisherFunc(func(ctx context.Context, next func(any) error) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case v, ok := <-ch:
				if !ok {
					return nil
				}

				if err := next(v); err != nil {
					return stopped(err)
				}
			}
		}
	})
}

// FromFunc publishes the single value fn returns, or fails with its error.
// fn is not called until the Publisher is subscribed to.
func FromFunc[T any](fn func(context.Context) (T, error)) Publisher {
	return PublisherFunc(func(ctx context.Context, next func(any) error) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}

		return stopped(next(v))
	})
}

// Collect subscribes to p, gathering every element published.
func Collect(ctx context.Context, p Publisher) ([]any, error) {
	out := make([]any, 0)
	err := p.Subscribe(ctx, func(v any) error {
		out = append(out, v)
		return nil
	})

	return out, err
}

// Drain subscribes to p, discarding every element published.
func Drain(ctx context.Context, p Publisher) error {
	return p.Subscribe(ctx, func(any) error { return nil })
}

// TypeOf returns the reflect.Type for T.
// Use it to describe the elements a Publisher emits.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// stopped swallows ErrStop.
func stopped(err error) error {
	if errors.Is(err, ErrStop) {
		return nil
	}

	return err
}
