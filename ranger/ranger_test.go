package ranger_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/session"
	tt "github.com/xy-planning-network/trailhead/http/template/templatetest"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/logger"
	"github.com/xy-planning-network/trailhead/ranger"
)

func newTestLogger(b *bytes.Buffer) logger.Logger {
	color.NoColor = true
	return logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
}

func newTestConfig() trailhead.Config {
	u, _ := url.Parse("http://example.com")
	return trailhead.Config{
		Env:             trailhead.Testing,
		Addr:            "127.0.0.1:0",
		BaseURL:         u,
		AssetsDir:       "assets",
		TemplateDir:     "tmpl",
		ShutdownTimeout: time.Second,
	}
}

func TestNew(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	p := tt.NewParser(tt.NewMockFile("hello.tmpl", []byte(`<p>hello {{ .name }}</p>`)))
	rng, err := ranger.New(
		newTestConfig(),
		ranger.WithLogger(newTestLogger(b)),
		ranger.WithParser(p),
		ranger.WithSessionStore(session.NewStub()),
	)
	require.Nil(t, err)
	require.NotNil(t, rng.EmitResponder())
	require.NotNil(t, rng.EmitSessionStore())
	require.NotNil(t, rng.EmitLogger())

	rng.HandleRoutes([]router.Route{
		{
			Path:   "/hello",
			Method: http.MethodGet,
			Handler: func(*http.Request) (*resp.Response, error) {
				return resp.OK().Render("hello", view.Model{"name": "trail"}), nil
			},
		},
		{
			Path:    "/broken",
			Method:  http.MethodGet,
			Handler: func(*http.Request) (*resp.Response, error) { return nil, errors.New("boom") },
		},
	})

	tcs := []struct {
		name     string
		target   string
		code     int
		contains string
	}{
		{"Renders-View", "/hello", http.StatusOK, "<p>hello trail</p>"},
		{"Renders-Embedded-Error-View", "/broken", http.StatusInternalServerError, "<h1>500 Internal Server Error</h1>"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "http://example.com"+tc.target, nil)

			// Act
			rng.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Body.String(), tc.contains)
			require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestNewOptionErrors(t *testing.T) {
	tcs := []struct {
		name string
		opt  ranger.RangerOption
	}{
		{"Nil-Logger", ranger.WithLogger(nil)},
		{"Nil-Parser", ranger.WithParser(nil)},
		{"Nil-Session-Store", ranger.WithSessionStore(nil)},
		{"Nil-Server", ranger.WithServer(nil)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange + Act
			rng, err := ranger.New(newTestConfig(), tc.opt)

			// Assert
			require.ErrorIs(t, err, trailhead.ErrBadConfig)
			require.Nil(t, rng)
		})
	}
}

func TestNewSessions(t *testing.T) {
	t.Run("Disabled-Without-Keys", func(t *testing.T) {
		// Arrange + Act
		rng, err := ranger.New(newTestConfig(), ranger.WithLogger(newTestLogger(new(bytes.Buffer))))

		// Assert
		require.Nil(t, err)
		require.Nil(t, rng.EmitSessionStore())
	})

	t.Run("Bad-Keys", func(t *testing.T) {
		// Arrange
		cfg := newTestConfig()
		cfg.SessionName = "trailhead"
		cfg.SessionAuthKey = "not hex"
		cfg.SessionEncryptKey = "not hex"

		// Act
		_, err := ranger.New(cfg, ranger.WithLogger(newTestLogger(new(bytes.Buffer))))

		// Assert
		require.ErrorIs(t, err, trailhead.ErrBadConfig)
	})

	t.Run("Cookies", func(t *testing.T) {
		// Arrange
		cfg := newTestConfig()
		cfg.SessionName = "trailhead"
		cfg.SessionAuthKey = "0123456789abcdef0123456789abcdef"
		cfg.SessionEncryptKey = "0123456789abcdef0123456789abcdef"

		// Act
		rng, err := ranger.New(cfg, ranger.WithLogger(newTestLogger(new(bytes.Buffer))))

		// Assert
		require.Nil(t, err)
		require.IsType(t, session.Service{}, rng.EmitSessionStore())
	})
}

func TestMaintModeHandler(t *testing.T) {
	// Arrange
	cfg := newTestConfig()
	cfg.MaintenanceMode = true

	rng, err := ranger.New(cfg, ranger.WithLogger(newTestLogger(new(bytes.Buffer))))
	require.Nil(t, err)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(method, "http://example.com/maint-mode-test", nil)

		// Act
		rng.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Equal(t, "600", w.Header().Get("Retry-After"))
		require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		require.Contains(t, w.Body.String(), "Down for maintenance")
	}
}

func TestGuideContext(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	rng, err := ranger.New(newTestConfig(), ranger.WithLogger(newTestLogger(b)))
	require.Nil(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Act
	err = rng.GuideContext(ctx)

	// Assert
	require.Nil(t, err)
	require.Contains(t, b.String(), "web server shutdown successfully")
}

func TestGuideContextCannotListen(t *testing.T) {
	// Arrange
	cfg := newTestConfig()
	cfg.Addr = "not-an-address"

	rng, err := ranger.New(cfg, ranger.WithLogger(newTestLogger(new(bytes.Buffer))))
	require.Nil(t, err)

	// Act
	err = rng.GuideContext(context.Background())

	// Assert
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not listen")
}
