package view_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
	tt "github.com/xy-planning-network/trailhead/http/template/templatetest"
	"github.com/xy-planning-network/trailhead/http/view"
	"golang.org/x/text/language"
)

func TestTemplateResolver(t *testing.T) {
	parser := tt.NewParser(
		tt.NewMockFile("tmpl/home.tmpl", []byte(`<p>hello {{ .string }}</p>`)),
		tt.NewMockFile("tmpl/home_fr.tmpl", []byte(`<p>bonjour {{ .string }}</p>`)),
		tt.NewMockFile("tmpl/home_fr-CA.tmpl", []byte(`<p>allo {{ .string }}</p>`)),
		tt.NewMockFile("tmpl/broken.tmpl", []byte(`{{ .string `)),
	)
	resolver := view.NewTemplateResolver(parser, view.WithPrefix("tmpl/"))

	tcs := []struct {
		name     string
		view     string
		locale   language.Tag
		expected string
	}{
		{"Default", "home", language.English, "<p>hello world</p>"},
		{"Undetermined", "home", language.Und, "<p>hello world</p>"},
		{"Base-Language", "home", language.MustParse("fr-FR"), "<p>bonjour world</p>"},
		{"Region", "home", language.CanadianFrench, "<p>allo world</p>"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			ex := exchange.New(w, httptest.NewRequest(http.MethodGet, "http://localhost", nil))

			// Act
			v, err := resolver.ResolveViewName(context.Background(), tc.view, tc.locale)
			require.Nil(t, err)
			require.NotNil(t, v)
			err = v.Render(context.Background(), view.NewModel("world"), media.MediaType{}, ex)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, w.Body.String())
			require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}

	t.Run("Not-Found", func(t *testing.T) {
		v, err := resolver.ResolveViewName(context.Background(), "away", language.English)
		require.Nil(t, err)
		require.Nil(t, v)

		v, err = resolver.ResolveViewName(context.Background(), "", language.English)
		require.Nil(t, err)
		require.Nil(t, v)
	})

	t.Run("Broken", func(t *testing.T) {
		v, err := resolver.ResolveViewName(context.Background(), "broken", language.English)
		require.NotNil(t, err)
		require.Nil(t, v)
	})
}

func TestTemplateViewLayout(t *testing.T) {
	// Arrange
	parser := tt.NewParser(
		tt.NewMockFile("layout.tmpl", []byte(`<main>{{ template "content" . }}</main>`)),
		tt.NewMockFile("views/about.html", []byte(`{{ define "content" }}{{ .int }}{{ end }}`)),
	)
	resolver := view.NewTemplateResolver(
		parser,
		view.WithPrefix("views/"),
		view.WithSuffix(".html"),
		view.WithLayouts("layout.tmpl"),
	)
	w := httptest.NewRecorder()
	ex := exchange.New(w, httptest.NewRequest(http.MethodGet, "http://localhost", nil))
	ex.Response.Header().Set("Content-Type", "application/xhtml+xml")

	// Act
	v, err := resolver.ResolveViewName(context.Background(), "about", language.English)
	require.Nil(t, err)
	err = v.Render(context.Background(), view.NewModel(42), media.TextHTML, ex)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "<main>42</main>", w.Body.String())
	require.Equal(t, "application/xhtml+xml", w.Header().Get("Content-Type"))
}

func TestTemplateViewExecuteFailure(t *testing.T) {
	// Arrange
	parser := tt.NewParser(tt.NewMockFile("fail.tmpl", []byte(`{{ template "missing" }}`)))
	w := httptest.NewRecorder()
	ex := exchange.New(w, httptest.NewRequest(http.MethodGet, "http://localhost", nil))

	// Act
	v, err := view.NewTemplateResolver(parser).ResolveViewName(context.Background(), "fail", language.English)
	require.Nil(t, err)
	err = v.Render(context.Background(), view.Model{}, media.MediaType{}, ex)

	// Assert
	require.NotNil(t, err)
	require.False(t, ex.Response.Committed())
	require.Empty(t, w.Body.String())
}
