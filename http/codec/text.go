package codec

import (
	"context"
	"fmt"
	"reflect"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
)

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	bytesType    = reflect.TypeOf([]byte(nil))
)

// A TextWriter writes strings, byte slices and fmt.Stringers as plain text.
type TextWriter struct {
	types []media.MediaType
}

// NewTextWriter constructs a *TextWriter producing types,
// defaulting to text/plain; charset=utf-8.
func NewTextWriter(types ...media.MediaType) *TextWriter {
	if len(types) == 0 {
		types = []media.MediaType{media.MustParse("text/plain; charset=utf-8")}
	}

	return &TextWriter{types: types}
}

// WritableMediaTypes lists the media types the TextWriter produces.
func (tw *TextWriter) WritableMediaTypes() []media.MediaType { return tw.types }

// CanWrite asserts elem is a string, []byte or fmt.Stringer and mt is producible.
func (tw *TextWriter) CanWrite(elem reflect.Type, mt media.MediaType) bool {
	if elem == nil {
		return false
	}

	ok := elem.Kind() == reflect.String || elem == bytesType || implements(elem, stringerType)
	return ok && canProduce(tw.types, mt)
}

// Write writes each element of msg.Body back to back.
func (tw *TextWriter) Write(ctx context.Context, msg Message, res *exchange.ServerResponse) error {
	setContentType(res, msg.MediaType)

	err := msg.Body.Subscribe(ctx, func(v any) error {
		b, err := textBytes(v)
		if err != nil {
			return err
		}

		_, err = res.Write(b)
		return err
	})
	if err != nil {
		return err
	}

	res.Commit()
	return nil
}

func textBytes(v any) ([]byte, error) {
	switch t := v.(type) {
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	case fmt.Stringer:
		return []byte(t.String()), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return []byte(rv.String()), nil
	}

	return nil, fmt.Errorf("%w: %T as text", ErrNotWritable, v)
}
