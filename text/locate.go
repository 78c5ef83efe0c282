package text

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
)

// Locate resolves a font reference to a file path. A relative name is tried
// under each of dirs, then as given; failing that, its file name is looked
// up among the installed system fonts.
func Locate(name string, dirs ...string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrFontNotFound)
	}
	var candidates []string
	if !filepath.IsAbs(name) {
		for _, d := range dirs {
			if d != "" {
				candidates = append(candidates, filepath.Join(d, name))
			}
		}
	}
	candidates = append(candidates, name)
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}

	path, err := findfont.Find(filepath.Base(name))
	if err != nil || path == "" {
		return "", fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return path, nil
}
