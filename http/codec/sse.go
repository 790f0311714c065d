package codec

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
)

var sseType = reflect.TypeOf(ServerSentEvent{})

// A ServerSentEvent is one event of a text/event-stream.
// Zero-value fields are omitted.
type ServerSentEvent struct {
	ID      string
	Event   string
	Retry   time.Duration
	Comment string

	// Data is written as-is when a string or []byte, otherwise it is encoded as JSON.
	// Multi-line data is split across data fields.
	Data any
}

// An EventStreamWriter writes elements as a text/event-stream,
// flushing after every event.
type EventStreamWriter struct{}

// NewEventStreamWriter constructs an *EventStreamWriter.
func NewEventStreamWriter() *EventStreamWriter { return &EventStreamWriter{} }

// WritableMediaTypes lists text/event-stream.
func (*EventStreamWriter) WritableMediaTypes() []media.MediaType {
	return []media.MediaType{media.TextEventStream}
}

// CanWrite asserts elem is a ServerSentEvent,
// or that mt explicitly asks for text/event-stream,
// in which case any element is wrapped as the data of an event.
func (*EventStreamWriter) CanWrite(elem reflect.Type, mt media.MediaType) bool {
	if elem == sseType || elem == reflect.PointerTo(sseType) {
		return mt.IsZero() || media.TextEventStream.IsCompatibleWith(mt)
	}

	return !mt.IsZero() && media.TextEventStream.Includes(mt)
}

// Write frames each element of msg.Body as an event.
func (*EventStreamWriter) Write(ctx context.Context, msg Message, res *exchange.ServerResponse) error {
	setContentType(res, media.TextEventStream)
	if res.Header().Get("Cache-Control") == "" {
		res.Header().Set("Cache-Control", "no-cache")
	}
	res.Header().Set("X-Accel-Buffering", "no")

	buf := bufio.NewWriter(res)
	err := msg.Body.Subscribe(ctx, func(v any) error {
		var evt ServerSentEvent
		switch t := v.(type) {
		case ServerSentEvent:
			evt = t
		case *ServerSentEvent:
			if t == nil {
				return nil
			}
			evt = *t
		default:
			evt = ServerSentEvent{Data: v}
		}

		if err := writeEvent(buf, evt); err != nil {
			return err
		}

		if err := buf.Flush(); err != nil {
			return err
		}

		return res.Flush()
	})
	if err != nil {
		return err
	}

	res.Commit()
	return nil
}

func writeEvent(w *bufio.Writer, evt ServerSentEvent) error {
	if evt.ID != "" {
		fmt.Fprintf(w, "id:%s\n", evt.ID)
	}

	if evt.Event != "" {
		fmt.Fprintf(w, "event:%s\n", evt.Event)
	}

	if evt.Retry > 0 {
		fmt.Fprintf(w, "retry:%d\n", evt.Retry.Milliseconds())
	}

	if evt.Comment != "" {
		for _, line := range strings.Split(evt.Comment, "\n") {
			fmt.Fprintf(w, ":%s\n", line)
		}
	}

	if evt.Data != nil {
		data, err := eventData(evt.Data)
		if err != nil {
			return err
		}

		for _, line := range strings.Split(data, "\n") {
			fmt.Fprintf(w, "data:%s\n", line)
		}
	}

	_, err := w.WriteString("\n")
	return err
}

func eventData(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: event data: %s", ErrNotWritable, err)
	}

	return string(b), nil
}
