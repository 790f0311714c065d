package media_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/media"
)

func TestParse(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected media.MediaType
		err      error
	}{
		{"JSON", "application/json", media.ApplicationJSON, nil},
		{"Upper-Case", "Text/HTML", media.TextHTML, nil},
		{
			"With-Params",
			"text/plain; charset=UTF-8",
			media.MediaType{Type: "text", Subtype: "plain", Params: map[string]string{"charset": "UTF-8"}},
			nil,
		},
		{"All", "*/*", media.All, nil},
		{"Short-All", "*", media.All, nil},
		{"Empty", "", media.MediaType{}, media.ErrInvalid},
		{"No-Subtype", "text", media.MediaType{}, media.ErrInvalid},
		{"Wildcard-Type", "*/json", media.MediaType{}, media.ErrInvalid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := media.Parse(tc.input)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestMustParse(t *testing.T) {
	require.Equal(t, media.TextEventStream, media.MustParse("text/event-stream"))
	require.Panics(t, func() { media.MustParse("nope") })
}

func TestMediaTypeString(t *testing.T) {
	require.Equal(t, "application/json", media.ApplicationJSON.String())
	require.Equal(t, "text/plain; charset=utf-8", media.MustParse("text/plain;charset=utf-8").String())
	require.Equal(t, "", media.MediaType{}.String())
}

func TestIncludes(t *testing.T) {
	vnd := media.MustParse("application/vnd.api+json")
	tcs := []struct {
		name     string
		a, b     media.MediaType
		expected bool
	}{
		{"All-Includes-JSON", media.All, media.ApplicationJSON, true},
		{"JSON-Not-Includes-All", media.ApplicationJSON, media.All, false},
		{"Text-Wildcard", media.MustParse("text/*"), media.TextPlain, true},
		{"Text-Wildcard-Not-JSON", media.MustParse("text/*"), media.ApplicationJSON, false},
		{"Same", media.TextPlain, media.MustParse("text/plain;charset=utf-8"), true},
		{"Suffix", media.MustParse("application/*+json"), vnd, true},
		{"Suffix-Mismatch", media.MustParse("application/*+xml"), vnd, false},
		{"Zero", media.MediaType{}, media.TextPlain, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.a.Includes(tc.b))
		})
	}
}

func TestIsCompatibleWith(t *testing.T) {
	require.True(t, media.All.IsCompatibleWith(media.TextPlain))
	require.True(t, media.TextPlain.IsCompatibleWith(media.All))
	require.False(t, media.ApplicationJSON.IsCompatibleWith(media.TextPlain))
}

func TestMostSpecific(t *testing.T) {
	utf8 := media.MustParse("text/plain;charset=utf-8")
	require.Equal(t, media.TextPlain, media.MostSpecific(media.All, media.TextPlain))
	require.Equal(t, media.TextPlain, media.MostSpecific(media.MustParse("text/*"), media.TextPlain))
	require.Equal(t, utf8, media.MostSpecific(media.TextPlain, utf8))
	require.Equal(t, media.ApplicationJSON, media.MostSpecific(media.ApplicationJSON, media.All))
}

func TestParseAccept(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		expected []media.MediaType
	}{
		{"Empty", "", []media.MediaType{media.All}},
		{"Single", "application/json", []media.MediaType{media.ApplicationJSON}},
		{
			"Quality-Ordered",
			"text/plain;q=0.5, application/json",
			[]media.MediaType{media.ApplicationJSON, media.TextPlain},
		},
		{
			"Drops-Zero-Quality",
			"text/html, application/json;q=0",
			[]media.MediaType{media.TextHTML},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, media.ParseAccept(tc.header))
		})
	}
}

func TestIsConcrete(t *testing.T) {
	require.True(t, media.TextPlain.IsConcrete())
	require.False(t, media.All.IsConcrete())
	require.False(t, media.MustParse("text/*").IsConcrete())
	require.False(t, media.MediaType{}.IsConcrete())
}
