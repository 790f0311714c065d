package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
)

var (
	readerType   = reflect.TypeOf((*io.Reader)(nil)).Elem()
	resourceType = reflect.TypeOf((*Resource)(nil)).Elem()
)

// A JSONWriter encodes elements as JSON.
// A single value is written as-is, a stream is written as a JSON array.
type JSONWriter struct {
	pool  *sync.Pool
	types []media.MediaType
}

// NewJSONWriter constructs a *JSONWriter producing application/json and application/*+json.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{
		pool: &sync.Pool{
			New: func() any {
				return new(bytes.Buffer)
			},
		},
		types: []media.MediaType{
			media.ApplicationJSON,
			{Type: "application", Subtype: "*+json"},
		},
	}
}

// WritableMediaTypes lists the media types the JSONWriter produces.
func (jw *JSONWriter) WritableMediaTypes() []media.MediaType { return jw.types }

// CanWrite asserts elem is something encoding/json can marshal and mt is producible.
func (jw *JSONWriter) CanWrite(elem reflect.Type, mt media.MediaType) bool {
	if elem == nil || implements(elem, readerType) || implements(elem, resourceType) {
		return false
	}

	switch elem.Kind() {
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return false
	}

	return canProduce(jw.types, mt)
}

// Write encodes each element of msg.Body into a pooled buffer,
// writing the buffer once msg.Body completes.
// An encoding failure therefore leaves the response uncommitted.
func (jw *JSONWriter) Write(ctx context.Context, msg Message, res *exchange.ServerResponse) error {
	b := jw.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer jw.pool.Put(b)

	enc := json.NewEncoder(b)
	count := 0
	if !msg.Single {
		b.WriteByte('[')
	}

	err := msg.Body.Subscribe(ctx, func(v any) error {
		if msg.Single && count > 0 {
			return fmt.Errorf("%w: more than one element for a single value", ErrNotWritable)
		}

		if !msg.Single && count > 0 {
			b.WriteByte(',')
		}

		count++
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%w: %s", ErrNotWritable, err)
		}

		// NOTE(dlk): Encoder.Encode terminates each value with a newline.
		b.Truncate(b.Len() - 1)
		return nil
	})
	if err != nil {
		return err
	}

	if !msg.Single {
		b.WriteByte(']')
	}

	setContentType(res, msg.MediaType)
	if _, err := b.WriteTo(res); err != nil {
		return err
	}

	res.Commit()
	return nil
}
