package fontinfo

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/fontc"
)

// ParseColor parses "r, g, b" or "r, g, b, a", optionally wrapped in
// parentheses, or a "#rgb", "#rrggbb" or "#rrggbbaa" hex string.
//
// Integer components are in [0, 255]. When any component is written with a
// decimal point all of them are taken as floats in [0, 1].
func ParseColor(s string) (fontc.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return fontc.ParseHex(s)
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return fontc.RGBA{}, fmt.Errorf("%w: %q (want 3 or 4 components)", fontc.ErrInvalidColor, s)
	}

	floats := strings.ContainsAny(s, ".eE")
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if floats {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil || f < 0 || f > 1 {
				return fontc.RGBA{}, fmt.Errorf("%w: component %q not in [0, 1]", fontc.ErrInvalidColor, p)
			}
			v[i] = f
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return fontc.RGBA{}, fmt.Errorf("%w: component %q not in [0, 255]", fontc.ErrInvalidColor, p)
		}
		v[i] = float64(n) / 255
	}
	return fontc.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// ParseColors parses a color list. Colors are parenthesized tuples, hex
// strings, or tuples separated by semicolons; the list may be wrapped in
// square brackets:
//
//	(255, 0, 0), (0, 0, 255)
//	[#ff0000, #0000ff]
//	255, 0, 0; 0, 0, 255
func ParseColors(s string) ([]fontc.RGBA, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")

	if !strings.ContainsAny(s, "(#") {
		var out []fontc.RGBA
		for _, part := range strings.Split(s, ";") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			c, err := ParseColor(part)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}

	var out []fontc.RGBA
	for {
		s = strings.TrimLeft(s, " \t\r\n,;")
		if s == "" {
			return out, nil
		}
		var tok string
		switch s[0] {
		case '(':
			end := strings.IndexByte(s, ')')
			if end < 0 {
				return nil, fmt.Errorf("%w: unbalanced parenthesis in %q", fontc.ErrInvalidColor, s)
			}
			tok, s = s[:end+1], s[end+1:]
		case '#':
			end := strings.IndexAny(s, " \t,;")
			if end < 0 {
				end = len(s)
			}
			tok, s = s[:end], s[end:]
		default:
			return nil, fmt.Errorf("%w: unexpected %q in color list", fontc.ErrInvalidColor, s)
		}
		c, err := ParseColor(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
}

// ParseIntPair parses "a, b", optionally parenthesized.
func ParseIntPair(s string) ([2]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("want two integers, got %q", s)
	}
	var out [2]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return [2]int{}, fmt.Errorf("want two integers, got %q", s)
		}
		out[i] = n
	}
	return out, nil
}

// ParseLetterRanges parses comma separated hexadecimal code points and
// inclusive ranges such as "20-7e,a0,2013-2014".
func ParseLetterRanges(s string) ([]rune, error) {
	var out []rune
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(tok, "-")
		a, err := parseCodePoint(lo)
		if err != nil {
			return nil, err
		}
		b := a
		if isRange {
			if b, err = parseCodePoint(hi); err != nil {
				return nil, err
			}
			if b < a {
				return nil, fmt.Errorf("letter range %q is reversed", tok)
			}
		}
		for c := a; c <= b; c++ {
			out = append(out, c)
		}
	}
	return out, nil
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hexadecimal code point %q", s)
	}
	if n > utf8.MaxRune {
		return 0, fmt.Errorf("code point %q is beyond U+10FFFF", s)
	}
	return rune(n), nil
}

// ParseOpacity parses a layer opacity. Integers are in [0, 255], floats in
// [0, 1].
func ParseOpacity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return 0, fmt.Errorf("opacity %d not in [0, 255]", n)
		}
		return float64(n) / 255, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid opacity %q", s)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("opacity %v not in [0, 1]", f)
	}
	return f, nil
}

// ParseNames parses a comma separated list of section names, optionally in
// square brackets.
func ParseNames(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	var out []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
