package fontinfo

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/fontc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want fontc.RGBA
	}{
		{"255, 0, 0", fontc.RGB(1, 0, 0)},
		{"(0, 255, 0)", fontc.RGB(0, 1, 0)},
		{"0, 0, 255, 0", fontc.RGBA{B: 1}},
		{"0.5, 0.25, 1", fontc.RGB(0.5, 0.25, 1)},
		{"1, 1, 1", fontc.RGB(1.0/255, 1.0/255, 1.0/255)},
		{"#ff0000", fontc.RGB(1, 0, 0)},
		{" #0000ff ", fontc.RGB(0, 0, 1)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, "ParseColor(%q)", tt.in)
		assert.InDelta(t, tt.want.R, got.R, 1e-9, "ParseColor(%q).R", tt.in)
		assert.InDelta(t, tt.want.G, got.G, 1e-9, "ParseColor(%q).G", tt.in)
		assert.InDelta(t, tt.want.B, got.B, 1e-9, "ParseColor(%q).B", tt.in)
		assert.InDelta(t, tt.want.A, got.A, 1e-9, "ParseColor(%q).A", tt.in)
	}

	for _, bad := range []string{"", "1, 2", "1, 2, 3, 4, 5", "300, 0, 0", "-1, 0, 0", "1.5, 0, 0", "red", "#12"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, fontc.ErrInvalidColor, "ParseColor(%q)", bad)
	}
}

func TestParseColors(t *testing.T) {
	for _, in := range []string{
		"(255, 0, 0), (0, 0, 255)",
		"[(255, 0, 0), (0, 0, 255)]",
		"#ff0000, #0000ff",
		"255, 0, 0; 0, 0, 255",
	} {
		got, err := ParseColors(in)
		require.NoError(t, err, "ParseColors(%q)", in)
		require.Len(t, got, 2, "ParseColors(%q)", in)
		assert.Equal(t, fontc.RGB(1, 0, 0), got[0], "ParseColors(%q)[0]", in)
		assert.Equal(t, fontc.RGB(0, 0, 1), got[1], "ParseColors(%q)[1]", in)
	}

	for _, bad := range []string{"(255, 0, 0", "(255, 0, 0), red", "(255, 0), (0, 0, 0)"} {
		_, err := ParseColors(bad)
		assert.Error(t, err, "ParseColors(%q)", bad)
	}
}

func TestParseIntPair(t *testing.T) {
	got, err := ParseIntPair("512, 256")
	require.NoError(t, err)
	assert.Equal(t, [2]int{512, 256}, got)

	got, err = ParseIntPair("(1,-2)")
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, -2}, got)

	for _, bad := range []string{"1", "1,2,3", "a,b", ""} {
		_, err := ParseIntPair(bad)
		assert.Error(t, err, "ParseIntPair(%q)", bad)
	}
}

func TestParseLetterRanges(t *testing.T) {
	got, err := ParseLetterRanges("20-22, 41,0x42,")
	require.NoError(t, err)
	assert.Equal(t, []rune{' ', '!', '"', 'A', 'B'}, got)

	got, err = ParseLetterRanges("20-7e")
	require.NoError(t, err)
	assert.Equal(t, fontc.DefaultLetters(), got)

	for _, bad := range []string{"7e-20", "zz", "110000", "20-", "-20"} {
		_, err := ParseLetterRanges(bad)
		assert.Error(t, err, "ParseLetterRanges(%q)", bad)
	}
}

func TestParseOpacity(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"255", 1},
		{"0", 0},
		{"1", 1.0 / 255},
		{"0.5", 0.5},
		{"1.0", 1},
	}
	for _, tt := range tests {
		got, err := ParseOpacity(tt.in)
		require.NoError(t, err, "ParseOpacity(%q)", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "ParseOpacity(%q)", tt.in)
	}
	for _, bad := range []string{"256", "-1", "1.5", "half"} {
		_, err := ParseOpacity(bad)
		assert.Error(t, err, "ParseOpacity(%q)", bad)
	}
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseNames("[a, b]"))
	assert.Equal(t, []string{"glow"}, ParseNames(" glow ,"))
	assert.Nil(t, ParseNames(""))
}

func TestReadLetters(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []rune
	}{
		{"utf8", []byte("ab\r\nc d\n"), []rune{'a', 'b', 'c', ' ', 'd'}},
		{"utf8 bom", []byte("\xef\xbb\xbfxé"), []rune{'x', 'é'}},
		{"utf16le bom", []byte{0xff, 0xfe, 'h', 0, 'i', 0, 0x3a, 0x04}, []rune{'h', 'i', 0x043a}},
		{"utf16be bom", []byte{0xfe, 0xff, 0, 'o', 0, 'k'}, []rune{'o', 'k'}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLetters(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ReadLetters(bytes.NewReader([]byte("\r\n\n")))
	assert.True(t, errors.Is(err, fontc.ErrNoLetters), "empty letters file: %v", err)
}
