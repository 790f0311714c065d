package router_test

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/logger"
)

func newTestResponder(b *bytes.Buffer) *resp.Responder {
	color.NoColor = true
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
	return resp.NewResponder(resp.WithLogger(l))
}

func mark(name string, order *[]string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			h.ServeHTTP(w, r)
		})
	}
}

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	var order []string
	b := new(bytes.Buffer)
	r := router.New(trailhead.Testing, newTestResponder(b), nil)
	r.OnEveryRequest(mark("every", &order))
	r.HandleRoutes(
		[]router.Route{
			{
				Path:   "/hello",
				Method: http.MethodGet,
				Handler: func(*http.Request) (*resp.Response, error) {
					order = append(order, "handler")
					return resp.OK().Body("hello"), nil
				},
				Middlewares: []middleware.Adapter{mark("route", &order)},
			},
			{
				Path:    "/teapot",
				Method:  http.MethodPost,
				Handler: func(*http.Request) (*resp.Response, error) { return nil, errors.New("boom") },
			},
		},
		mark("group", &order),
	)

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/hello", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hello", w.Body.String())
	require.Equal(t, []string{"every", "group", "route", "handler"}, order)

	// Act
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "https://example.com/teapot", nil))

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, b.String(), "boom")

	// Act
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/teapot", nil))

	// Assert
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	r := router.New(trailhead.Testing, newTestResponder(new(bytes.Buffer)), nil)
	r.HandleNotFound(func(*http.Request) (*resp.Response, error) {
		return resp.NotFound().Body("nothing here"), nil
	})

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/nowhere", nil))

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "nothing here", w.Body.String())
}

func TestRouterCatchAll(t *testing.T) {
	// Arrange
	r := router.New(trailhead.Testing, nil, nil)
	r.CatchAll(func(*http.Request) (*resp.Response, error) {
		return resp.WithStatus(resp.Status(http.StatusServiceUnavailable)).Body("down for maintenance"), nil
	})

	for _, target := range []string{"/", "/a", "/a/b/c"} {
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com"+target, nil))

		// Assert
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	}
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	var order []string
	r := router.New(trailhead.Testing, newTestResponder(new(bytes.Buffer)), nil)
	r.OnEveryRequest(mark("every", &order))

	api := r.Subrouter("/api/v1")
	api.Handle(router.Route{
		Path:    "/users",
		Method:  http.MethodGet,
		Handler: func(*http.Request) (*resp.Response, error) { return resp.OK().Body([]string{"dlk"}), nil },
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "https://example.com/api/v1/users", nil)
	req.Header.Set("Accept", "application/json")

	// Act
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `["dlk"]`, w.Body.String())
	require.Equal(t, []string{"every"}, order)
}

func TestRouterStatic(t *testing.T) {
	modTime := time.Date(2022, time.March, 1, 12, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"app.css":       {Data: []byte("body{}"), ModTime: modTime},
		"img/logo.svg":  {Data: []byte("<svg/>"), ModTime: modTime},
		"img/empty.txt": {Data: []byte{}, ModTime: modTime},
	}

	tcs := []struct {
		name        string
		target      string
		code        int
		body        string
		contentType string
	}{
		{"CSS", "/assets/app.css", http.StatusOK, "body{}", "text/css; charset=utf-8"},
		{"Nested", "/assets/img/logo.svg", http.StatusOK, "<svg/>", "image/svg+xml"},
		{"Directory", "/assets/img", http.StatusNotFound, "", ""},
		{"Missing", "/assets/nope.js", http.StatusNotFound, "", ""},
		{"Cleaned", "/assets/../secret", http.StatusMovedPermanently, "", ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := router.New(trailhead.Testing, newTestResponder(new(bytes.Buffer)), nil)
			r.Static("/assets/", fsys)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "https://example.com/assets/", nil)
			req.URL.Path = tc.target

			// Act
			r.ServeHTTP(w, req)

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.code != http.StatusOK {
				return
			}

			require.Equal(t, tc.body, w.Body.String())
			require.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			require.Equal(t, "max-age=2592000, public", w.Header().Get("Cache-Control"))
			require.Equal(t, modTime.Format(http.TimeFormat), w.Header().Get("Last-Modified"))
		})
	}
}
