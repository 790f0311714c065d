package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/stream"
)

func TestRespond(t *testing.T) {
	tcs := []struct {
		name   string
		res    *resp.Response
		code   int
		body   string
		logged string
	}{
		{"Written", resp.BadRequest().Body("nope"), http.StatusBadRequest, "nope", ""},
		{"Write-Fails", resp.OK().BuildWith(stream.Fail(errors.New("boom"))), http.StatusInternalServerError, "Internal Server Error\n", "boom"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			restore := middleware.SetAnswerer(resp.NewResponder(resp.WithLogger(newTestLogger(b))))
			defer restore()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "https://example.com", nil)

			// Act
			middleware.Respond(w, r, tc.res)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.body, w.Body.String())
			if tc.logged == "" {
				require.Empty(t, b.String())
				return
			}

			require.Contains(t, b.String(), "[ERROR]")
			require.Contains(t, b.String(), tc.logged)
		})
	}
}
