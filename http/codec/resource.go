package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path"
	"reflect"
	"strconv"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
)

// A Resource is a named source of bytes, such as a file.
type Resource interface {
	// Name identifies the Resource; its extension determines the content type written.
	Name() string

	// Open returns a fresh reader over the Resource's bytes.
	Open() (io.ReadCloser, error)
}

// A Sizer knows its length in bytes, or returns -1 when it does not.
type Sizer interface {
	Size() int64
}

type bytesResource struct {
	name string
	b    []byte
}

// NewBytesResource constructs a Resource over b.
func NewBytesResource(name string, b []byte) Resource {
	return bytesResource{name: name, b: b}
}

func (r bytesResource) Name() string                 { return r.name }
func (r bytesResource) Open() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(r.b)), nil }
func (r bytesResource) Size() int64                  { return int64(len(r.b)) }

type fsResource struct {
	fsys fs.FS
	name string
}

// NewFSResource constructs a Resource over the file name in fsys.
// The file is not opened until the Resource is written.
func NewFSResource(fsys fs.FS, name string) Resource {
	return fsResource{fsys: fsys, name: name}
}

func (r fsResource) Name() string                 { return r.name }
func (r fsResource) Open() (io.ReadCloser, error) { return r.fsys.Open(r.name) }

func (r fsResource) Size() int64 {
	info, err := fs.Stat(r.fsys, r.name)
	if err != nil || info.IsDir() {
		return -1
	}

	return info.Size()
}

// A ResourceWriter copies a Resource's bytes to the response.
type ResourceWriter struct{}

// NewResourceWriter constructs a *ResourceWriter.
func NewResourceWriter() *ResourceWriter { return &ResourceWriter{} }

// WritableMediaTypes lists */*: a Resource can be any media type.
func (*ResourceWriter) WritableMediaTypes() []media.MediaType {
	return []media.MediaType{media.All}
}

// CanWrite asserts elem is a Resource.
func (*ResourceWriter) CanWrite(elem reflect.Type, _ media.MediaType) bool {
	return implements(elem, resourceType)
}

// Write copies the single Resource msg.Body publishes.
//
// When the negotiated media type is not concrete or is application/octet-stream,
// the content type is derived from the Resource's extension.
// Content-Length is set when the Resource is a Sizer.
func (rw *ResourceWriter) Write(ctx context.Context, msg Message, res *exchange.ServerResponse) error {
	var rsc Resource
	err := msg.Body.Subscribe(ctx, func(v any) error {
		r, ok := v.(Resource)
		if !ok {
			return fmt.Errorf("%w: %T as a resource", ErrNotWritable, v)
		}

		if rsc != nil {
			return fmt.Errorf("%w: more than one resource", ErrNotWritable)
		}

		rsc = r
		return nil
	})
	if err != nil {
		return err
	}

	if rsc == nil {
		return fmt.Errorf("%w: resource", ErrNoElement)
	}

	rc, err := rsc.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", rsc.Name(), err)
	}
	defer rc.Close()

	setContentType(res, resourceMediaType(rsc, msg.MediaType))
	if s, ok := rsc.(Sizer); ok && s.Size() >= 0 && res.Header().Get("Content-Length") == "" {
		res.Header().Set("Content-Length", strconv.FormatInt(s.Size(), 10))
	}

	if _, err := io.Copy(res, rc); err != nil {
		return err
	}

	res.Commit()
	return nil
}

func resourceMediaType(rsc Resource, mt media.MediaType) media.MediaType {
	if mt.IsConcrete() && !mt.Equal(media.ApplicationOctetStream) {
		return mt
	}

	if byExt := mime.TypeByExtension(path.Ext(rsc.Name())); byExt != "" {
		if parsed, err := media.Parse(byExt); err == nil {
			return parsed
		}
	}

	return media.ApplicationOctetStream
}
