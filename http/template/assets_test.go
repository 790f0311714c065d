package template_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/template"
	tt "github.com/xy-planning-network/trailhead/http/template/templatetest"
)

func TestAssetURI(t *testing.T) {
	hashed := tt.NewMockFS(tt.NewMockFile("static/js/app-af8s7f9.js", nil))

	// Arrange
	tcs := []struct {
		name      string
		env       trailhead.Environment
		assetPath string
		expected  string
	}{
		{"env-testing", trailhead.Testing, "js/app.js", ""},
		{"env-dev", trailhead.Development, "js/app.js", "/static/js/app.js"},
		{"env-dev-leading-slash", trailhead.Development, "/js/app.js", "/static/js/app.js"},
		{"no-hash-match", trailhead.Production, "js/other.js", "/static/js/other.js"},
		{"hash-match", trailhead.Production, "js/app.js", "/static/js/app-af8s7f9.js"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			name, fn := template.AssetURI(tc.env, hashed, "/static/")

			// Act
			actual := fn(tc.assetPath)

			// Assert
			require.Equal(t, "assetURI", name)
			require.Equal(t, tc.expected, actual)
		})
	}
}
