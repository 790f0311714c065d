package codec

import (
	"context"
	"errors"
	"iter"
	"reflect"
	"slices"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
	"github.com/xy-planning-network/trailhead/stream"
)

var (
	ErrNotWritable = errors.New("not writable")
	ErrNoElement   = errors.New("no element")
)

// A Message is everything a MessageWriter needs to serialize a body.
type Message struct {
	// Body publishes the elements to write.
	Body stream.Publisher

	// Element describes the type of the elements Body publishes.
	Element reflect.Type

	// Single is set when Body publishes at most one element,
	// as opposed to a stream of them.
	Single bool

	// MediaType is the negotiated media type to write as.
	MediaType media.MediaType
}

// A MessageWriter serializes Messages.
type MessageWriter interface {
	// WritableMediaTypes lists the media types the MessageWriter can produce.
	WritableMediaTypes() []media.MediaType

	// CanWrite asserts whether elements of type elem can be written as mt.
	// A zero-value mt asks about elem alone.
	CanWrite(elem reflect.Type, mt media.MediaType) bool

	// Write subscribes to msg.Body, writing each element to res.
	Write(ctx context.Context, msg Message, res *exchange.ServerResponse) error
}

// A WriterSupplier lazily produces the MessageWriters available to an exchange.Exchange.
type WriterSupplier func() iter.Seq[MessageWriter]

// DefaultWriters returns the MessageWriters this package provides.
func DefaultWriters() []MessageWriter {
	return []MessageWriter{
		NewTextWriter(),
		NewJSONWriter(),
		NewResourceWriter(),
		NewEventStreamWriter(),
	}
}

// SetWriters installs writers on ex under exchange.MessageWritersAttribute.
func SetWriters(ex *exchange.Exchange, writers ...MessageWriter) {
	ex.SetAttribute(exchange.MessageWritersAttribute, WriterSupplier(func() iter.Seq[MessageWriter] {
		return slices.Values(writers)
	}))
}

// Writers looks up the MessageWriters installed on ex.
// It reports false when ex has none or the attribute holds something unexpected.
func Writers(ex *exchange.Exchange) (iter.Seq[MessageWriter], bool) {
	val, ok := ex.Attribute(exchange.MessageWritersAttribute)
	if !ok {
		return nil, false
	}

	switch supplier := val.(type) {
	case WriterSupplier:
		return supplier(), true
	case func() iter.Seq[MessageWriter]:
		return supplier(), true
	case []MessageWriter:
		return slices.Values(supplier), true
	default:
		return nil, false
	}
}

// canProduce asserts whether any of types is compatible with mt.
// A zero-value mt is compatible with anything.
func canProduce(types []media.MediaType, mt media.MediaType) bool {
	if mt.IsZero() {
		return true
	}

	for _, t := range types {
		if t.IsCompatibleWith(mt) {
			return true
		}
	}

	return false
}

// setContentType sets the Content-Type header to mt
// unless a concrete one was already configured.
func setContentType(res *exchange.ServerResponse, mt media.MediaType) {
	if existing, err := media.Parse(res.Header().Get("Content-Type")); err == nil && existing.IsConcrete() {
		return
	}

	if mt.IsConcrete() {
		res.Header().Set("Content-Type", mt.String())
	}
}

// implements asserts whether elem, or a pointer to it, implements iface.
func implements(elem reflect.Type, iface reflect.Type) bool {
	if elem == nil {
		return false
	}

	return elem.Implements(iface) || (elem.Kind() != reflect.Pointer && elem.Kind() != reflect.Interface && reflect.PointerTo(elem).Implements(iface))
}
