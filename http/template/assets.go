package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

// AssetURI encloses the environment and filesystem so when called executing a template,
// emits a URI for a static asset served under base.
//
// Outside of development, a content-hashed copy of the asset is preferred when one exists,
// e.g., for assetPath = js/app.js, base/js/app-af8s7f9.js.
func AssetURI(env trailhead.Environment, filesys fs.FS, base string) (string, func(string) string) {
	if filesys == nil {
		filesys = os.DirFS(".")
	}
	base = strings.Trim(base, "/")

	return "assetURI", func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			return fmt.Sprintf("/%s/%s", base, assetPath)

		default:
			ext := path.Ext(assetPath)
			glob := fmt.Sprintf("%s/%s-*%s", base, strings.TrimSuffix(assetPath, ext), ext)
			matches, err := fs.Glob(filesys, glob)
			if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
				return fmt.Sprintf("/%s/%s", base, assetPath)
			}

			return "/" + matches[0]
		}
	}
}
