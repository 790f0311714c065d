// Package codec turns the elements of a stream.Publisher into bytes on an exchange.ServerResponse.
//
// A MessageWriter advertises the media types it produces and which element types it can serialize.
// The writers provided here cover the common cases:
//
// 	TextWriter        text/plain         strings, []byte, fmt.Stringer
// 	JSONWriter        application/json   anything encoding/json can marshal
// 	ResourceWriter    */*                Resource
// 	EventStreamWriter text/event-stream  ServerSentEvent
//
// DefaultWriters returns all four, in that order.
package codec
