package resp

import (
	"reflect"

	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/stream"
)

// A Body describes how a Response produces its body.
//
// The set of Bodies is closed:
//
//	EmptyBody
//	ValueBody
//	PublisherBody
//	ResourceBody
//	EventStreamBody
//	Rendering
type Body interface {
	body()
}

// An EmptyBody writes no bytes.
type EmptyBody struct{}

// A ValueBody writes Value, serialized by a negotiated codec.MessageWriter.
type ValueBody struct {
	Value any
}

// A PublisherBody writes the elements Publisher emits, serialized by a negotiated codec.MessageWriter.
//
// When Element is nil, Publisher only signals completion: whatever it emits is discarded
// and no body bytes are written.
type PublisherBody struct {
	Publisher stream.Publisher
	Element   reflect.Type
}

// A ResourceBody writes the bytes of Resource.
type ResourceBody struct {
	Resource codec.Resource
}

// An EventStreamBody writes the events Events emits as a text/event-stream.
// Elements that are not a codec.ServerSentEvent become the data of one.
type EventStreamBody struct {
	Events stream.Publisher
}

// A Rendering renders the view called Name with Model.
type Rendering struct {
	Name  string
	Model view.Model
}

func (EmptyBody) body()       {}
func (ValueBody) body()       {}
func (PublisherBody) body()   {}
func (ResourceBody) body()    {}
func (EventStreamBody) body() {}
func (Rendering) body()       {}
