package resp_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/media"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/stream"
)

type builderTest struct{ Name string }

// values is a Publisher comparable with require.Equal.
type values []any

func (v values) Subscribe(ctx context.Context, next func(any) error) error {
	return stream.Just(v...).Subscribe(ctx, next)
}

func TestFactories(t *testing.T) {
	loc, err := url.Parse("https://example.com/accounts/1")
	require.Nil(t, err)

	tcs := []struct {
		name     string
		builder  *resp.Builder
		expected int
		location *url.URL
	}{
		{"OK", resp.OK(), http.StatusOK, nil},
		{"Created", resp.Created(loc), http.StatusCreated, loc},
		{"Accepted", resp.Accepted(), http.StatusAccepted, nil},
		{"No-Content", resp.NoContent(), http.StatusNoContent, nil},
		{"See-Other", resp.SeeOther(loc), http.StatusSeeOther, loc},
		{"Temporary-Redirect", resp.TemporaryRedirect(loc), http.StatusTemporaryRedirect, loc},
		{"Permanent-Redirect", resp.PermanentRedirect(loc), http.StatusPermanentRedirect, loc},
		{"Bad-Request", resp.BadRequest(), http.StatusBadRequest, nil},
		{"Not-Found", resp.NotFound(), http.StatusNotFound, nil},
		{"Unprocessable-Entity", resp.UnprocessableEntity(), http.StatusUnprocessableEntity, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			res := tc.builder.Build()

			// Assert
			require.Equal(t, tc.expected, res.Status().Code())
			require.Equal(t, tc.location, res.Header().Location())
			require.Equal(t, resp.EmptyBody{}, res.Body())
			require.Nil(t, res.Value())
		})
	}
}

func TestWithStatusCode(t *testing.T) {
	b, err := resp.WithStatusCode(http.StatusTeapot)
	require.Nil(t, err)
	require.Equal(t, http.StatusTeapot, b.Build().Status().Code())

	b, err = resp.WithStatusCode(999)
	require.ErrorIs(t, err, resp.ErrInvalidStatus)
	require.Nil(t, b)

	b, err = resp.OK().StatusCode(999)
	require.ErrorIs(t, err, resp.ErrInvalidStatus)
	require.Equal(t, http.StatusOK, b.Build().Status().Code())

	b, err = resp.OK().StatusCode(http.StatusAccepted)
	require.Nil(t, err)
	require.Equal(t, resp.StatusAccepted, b.Build().Status())
}

func TestFrom(t *testing.T) {
	// Arrange
	other := resp.WithStatus(resp.StatusCreated).Header("MyKey", "MyValue").Body("foo")

	// Act
	res := resp.From(other).Build()

	// Assert
	require.Equal(t, other.Status(), res.Status())
	require.Equal(t, other.Header(), res.Header())
	require.Equal(t, resp.EmptyBody{}, res.Body())

	// Assert headers are copied, not shared
	resp.From(other).Header("MyKey", "Other").Build()
	require.Equal(t, []string{"MyValue"}, other.Header().Values("MyKey"))
}

func TestHeaderAppendsAndHeadersReplaces(t *testing.T) {
	// Arrange
	replacement := http.Header{"Foo": {"bar"}}

	// Act
	appended := resp.OK().Header("MyKey", "a").Header("MyKey", "b").Build()
	replaced := resp.OK().Header("MyKey", "a").Headers(replacement).Build()
	replacement.Set("Foo", "baz")

	// Assert
	require.Equal(t, []string{"a", "b"}, appended.Header().Values("MyKey"))
	require.Equal(t, resp.Header{"Foo": {"bar"}}, replaced.Header())
}

func TestResponseHeaderIsCopy(t *testing.T) {
	res := resp.OK().Header("MyKey", "MyValue").Build()
	h := res.Header()
	http.Header(h).Set("MyKey", "changed")

	require.Equal(t, "MyValue", res.Header().Get("MyKey"))
}

func TestTypedHeaders(t *testing.T) {
	now := time.Now()
	loc, err := url.Parse("/elsewhere")
	require.Nil(t, err)

	tcs := []struct {
		name   string
		res    *resp.Response
		assert func(*testing.T, resp.Header)
	}{
		{
			"ETag",
			resp.OK().ETag("foo").Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, `"foo"`, h.ETag()) },
		},
		{
			"ETag-Quoted",
			resp.OK().ETag(`"foo"`).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, `"foo"`, h.ETag()) },
		},
		{
			"ETag-Weak",
			resp.OK().ETag(`W/"foo"`).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, `W/"foo"`, h.ETag()) },
		},
		{
			"Last-Modified",
			resp.OK().LastModified(now).Build(),
			func(t *testing.T, h resp.Header) {
				require.True(t, now.Truncate(time.Second).Equal(h.LastModified()))
			},
		},
		{
			"Content-Length",
			resp.OK().ContentLength(42).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, int64(42), h.ContentLength()) },
		},
		{
			"Content-Type",
			resp.OK().ContentType(media.ApplicationJSON).Build(),
			func(t *testing.T, h resp.Header) {
				mt, ok := h.ContentType()
				require.True(t, ok)
				require.True(t, media.ApplicationJSON.Equal(mt))
			},
		},
		{
			"Cache-Control",
			resp.OK().CacheControl(resp.NoCache()).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, "no-cache", h.CacheControl()) },
		},
		{
			"Cache-Control-Empty",
			resp.OK().CacheControl(resp.NoCache()).CacheControl(resp.Empty()).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, "", h.CacheControl()) },
		},
		{
			"Vary",
			resp.OK().VaryBy("accept", "Origin").VaryBy("Accept", "Accept-Language").Build(),
			func(t *testing.T, h resp.Header) {
				require.Equal(t, []string{"Accept", "Origin", "Accept-Language"}, h.Vary())
			},
		},
		{
			"Vary-None",
			resp.OK().VaryBy().VaryBy(" ").Build(),
			func(t *testing.T, h resp.Header) {
				_, ok := http.Header(h)["Vary"]
				require.False(t, ok)
			},
		},
		{
			"Vary-None-Keeps",
			resp.OK().VaryBy("Accept").VaryBy().Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, []string{"Accept"}, h.Vary()) },
		},
		{
			"Allow-None",
			resp.OK().Allow().Build(),
			func(t *testing.T, h resp.Header) {
				_, ok := http.Header(h)["Allow"]
				require.False(t, ok)
			},
		},
		{
			"Allow",
			resp.OK().Allow(http.MethodPost, http.MethodGet, http.MethodGet).Build(),
			func(t *testing.T, h resp.Header) {
				require.ElementsMatch(t, []string{http.MethodGet, http.MethodPost}, h.Allow())
			},
		},
		{
			"Allow-Replaces",
			resp.OK().Allow(http.MethodPost).Allow(http.MethodDelete).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, []string{http.MethodDelete}, h.Allow()) },
		},
		{
			"Location",
			resp.OK().Location(loc).Build(),
			func(t *testing.T, h resp.Header) { require.Equal(t, loc, h.Location()) },
		},
		{
			"Location-Nil",
			resp.OK().Location(loc).Location(nil).Build(),
			func(t *testing.T, h resp.Header) { require.Nil(t, h.Location()) },
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tc.assert(t, tc.res.Header())
		})
	}
}

func TestBodies(t *testing.T) {
	value := &builderTest{"foo"}
	pub := values{"a", "b"}
	rsc := codec.NewBytesResource("a.txt", []byte("a"))

	t.Run("Value-Identity", func(t *testing.T) {
		res := resp.OK().Body(value)
		require.Same(t, value, res.Value())
		require.Equal(t, "foo", resp.OK().Body("foo").Value())
	})

	t.Run("Build-With", func(t *testing.T) {
		res := resp.OK().BuildWith(pub)
		require.Equal(t, resp.PublisherBody{Publisher: pub}, res.Body())
	})

	t.Run("Stream", func(t *testing.T) {
		res := resp.OK().Stream(pub, stream.TypeOf[string]())
		require.Equal(t, resp.PublisherBody{Publisher: pub, Element: stream.TypeOf[string]()}, res.Body())
	})

	t.Run("Resource", func(t *testing.T) {
		res := resp.OK().Resource(rsc)
		require.Equal(t, resp.ResourceBody{Resource: rsc}, res.Body())
		require.Equal(t, rsc, res.Value())
	})

	t.Run("SSE", func(t *testing.T) {
		res := resp.OK().SSE(pub)
		require.Equal(t, resp.EventStreamBody{Events: pub}, res.Body())
	})

	t.Run("Render", func(t *testing.T) {
		model := view.Model{"foo": "bar"}
		res := resp.OK().Render("view", model)
		require.Equal(t, resp.Rendering{Name: "view", Model: model}, res.Body())
	})

	t.Run("Render-Objects", func(t *testing.T) {
		obj := builderTest{"bar"}
		res := resp.OK().RenderObjects("name", obj, []string{}, "foo")

		rendering, ok := res.Body().(resp.Rendering)
		require.True(t, ok)
		require.Equal(t, "name", rendering.Name)
		require.Len(t, rendering.Model, 2)
		require.Equal(t, obj, rendering.Model["builderTest"])
		require.Equal(t, "foo", rendering.Model["string"])
	})
}

func TestBuilderUsed(t *testing.T) {
	// Arrange
	b := resp.OK()
	b.Build()

	// Act + Assert
	require.PanicsWithValue(t, resp.ErrBuilderUsed, func() { b.Header("MyKey", "MyValue") })
	require.PanicsWithValue(t, resp.ErrBuilderUsed, func() { b.Body("foo") })
}

func TestZeroValueBuilder(t *testing.T) {
	res := new(resp.Builder).Header("MyKey", "MyValue").Build()
	require.Equal(t, resp.StatusOK, res.Status())
	require.Equal(t, "MyValue", res.Header().Get("MyKey"))
}
