package fontinfo

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/fontc"
	"gopkg.in/ini.v1"
)

var (
	errUnknownOption = errors.New("unknown option")
	errMissing       = errors.New("required option is missing")
)

// optionSet reads typed options from one section. The first failure is
// kept as a *fontc.ConfigError naming the section and key; later reads
// return defaults so a builder can run to completion and report it once.
type optionSet struct {
	name string
	sec  *ini.Section
	used map[string]bool
	err  error
}

func newOptionSet(sec *ini.Section) *optionSet {
	return &optionSet{
		name: sec.Name(),
		sec:  sec,
		used: map[string]bool{"type": true},
	}
}

// lookup returns the raw value of key and marks it as known.
func (o *optionSet) lookup(key string) (string, bool) {
	o.used[key] = true
	if !o.sec.HasKey(key) {
		return "", false
	}
	return strings.TrimSpace(o.sec.Key(key).String()), true
}

func (o *optionSet) fail(key string, err error) {
	if o.err == nil {
		o.err = &fontc.ConfigError{Section: o.name, Key: key, Err: err}
	}
}

// finish reports the first read error, or the first key no reader asked
// for.
func (o *optionSet) finish() error {
	if o.err != nil {
		return o.err
	}
	for _, k := range o.sec.KeyStrings() {
		if !o.used[k] {
			return &fontc.ConfigError{Section: o.name, Key: k, Err: errUnknownOption}
		}
	}
	return nil
}

// intCheck validates an integer option.
type intCheck func(int) error

func positive(v int) error {
	if v <= 0 {
		return fmt.Errorf("must be positive, got %d", v)
	}
	return nil
}

func nonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("must not be negative, got %d", v)
	}
	return nil
}

func percent(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("must be a percentage in [0, 100], got %d", v)
	}
	return nil
}

func powerOfTwo(v int) error {
	if v <= 0 || v&(v-1) != 0 {
		return fmt.Errorf("must be a power of two, got %d", v)
	}
	return nil
}

func (o *optionSet) int(key string, def int, checks ...intCheck) int {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		o.fail(key, fmt.Errorf("want an integer, got %q", s))
		return def
	}
	for _, c := range checks {
		if err := c(v); err != nil {
			o.fail(key, err)
			return def
		}
	}
	return v
}

func (o *optionSet) float(key string, def float64) float64 {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		o.fail(key, fmt.Errorf("want a number, got %q", s))
		return def
	}
	return v
}

func (o *optionSet) bool(key string, def bool) bool {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		o.fail(key, fmt.Errorf("want 0 or 1, got %q", s))
		return def
	}
	return v
}

func (o *optionSet) string(key, def string) string {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	return s
}

// require reads a string option that has no default.
func (o *optionSet) require(key string) string {
	s, ok := o.lookup(key)
	if !ok || s == "" {
		o.fail(key, errMissing)
	}
	return s
}

func (o *optionSet) color(key string, def fontc.RGBA) fontc.RGBA {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		o.fail(key, err)
		return def
	}
	return c
}

func (o *optionSet) colors(key string, def []fontc.RGBA) []fontc.RGBA {
	s, ok := o.lookup(key)
	if !ok {
		return slices.Clone(def)
	}
	c, err := ParseColors(s)
	if err != nil {
		o.fail(key, err)
		return slices.Clone(def)
	}
	if len(c) < 2 {
		o.fail(key, fontc.ErrTooFewColors)
		return slices.Clone(def)
	}
	return c
}

func (o *optionSet) pair(key string, def [2]int, checks ...intCheck) [2]int {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	v, err := ParseIntPair(s)
	if err != nil {
		o.fail(key, err)
		return def
	}
	for _, c := range checks {
		for _, n := range v {
			if err := c(n); err != nil {
				o.fail(key, err)
				return def
			}
		}
	}
	return v
}

func (o *optionSet) opacity(key string, def float64) float64 {
	s, ok := o.lookup(key)
	if !ok {
		return def
	}
	v, err := ParseOpacity(s)
	if err != nil {
		o.fail(key, err)
		return def
	}
	return v
}

func (o *optionSet) mask(key string) fontc.MaskPolicy {
	s, ok := o.lookup(key)
	if !ok {
		return fontc.MaskInherit
	}
	m, err := fontc.ParseMaskPolicy(s)
	if err != nil {
		o.fail(key, err)
	}
	return m
}
