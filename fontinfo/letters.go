package fontinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/fontc"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadLetters decodes a letters file. Text is UTF-8 unless it starts with a
// UTF-8 or UTF-16 byte order mark. Line breaks are dropped; every other
// character, spaces included, becomes a letter.
func ReadLetters(r io.Reader) ([]rune, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("fontinfo: decode letters: %w", err)
	}
	var out []rune
	for _, c := range string(data) {
		switch c {
		case '\n', '\r', '\ufeff':
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fontc.ErrNoLetters
	}
	return out, nil
}

// ReadLettersFile reads the letters file at path.
func ReadLettersFile(path string) ([]rune, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("fontinfo: open letters: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadLetters(f)
}
