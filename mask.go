package fontc

import (
	"fmt"
	"strings"
)

// MaskPolicy controls which pixels survive a layer's mask step.
type MaskPolicy int

const (
	// MaskInherit uses the enclosing layer's policy. On a layer it means
	// MaskOriginal.
	MaskInherit MaskPolicy = iota
	// MaskOriginal keeps only pixels inside the glyph silhouette.
	MaskOriginal
	// MaskPadded also keeps pixels within the effect's padding of the
	// silhouette, so outlines and shadows survive.
	MaskPadded
	// MaskNone disables the mask step.
	MaskNone
)

var maskPolicyNames = [...]string{
	MaskInherit:  "inherit",
	MaskOriginal: "original",
	MaskPadded:   "padded",
	MaskNone:     "none",
}

func (m MaskPolicy) String() string {
	if m < 0 || int(m) >= len(maskPolicyNames) {
		return fmt.Sprintf("MaskPolicy(%d)", int(m))
	}
	return maskPolicyNames[m]
}

// ParseMaskPolicy resolves a case-insensitive policy name. "default" is an
// alias for original; an empty string means inherit.
func ParseMaskPolicy(s string) (MaskPolicy, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch n {
	case "":
		return MaskInherit, nil
	case "default":
		return MaskOriginal, nil
	}
	for i, name := range maskPolicyNames {
		if name == n {
			return MaskPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mask policy %q (want original, padded or none)", s)
}

func (m MaskPolicy) resolve(parent MaskPolicy) MaskPolicy {
	if m == MaskInherit {
		return parent
	}
	return m
}

// applyMask zeroes the pixels of img outside the region kept by the layer's
// mask policy. silhouette is the glyph coverage; img is modified in place.
func applyMask(img, silhouette *ImageBuf, l *Layer) {
	layerPolicy := l.Mask.resolve(MaskOriginal)
	if layerPolicy == MaskNone {
		return
	}
	var grow []Padding
	if layerPolicy == MaskPadded && len(l.Effects) == 0 {
		grow = append(grow, Padding{})
	}
	for _, e := range l.Effects {
		switch e.MaskPolicy().resolve(layerPolicy) {
		case MaskNone:
			return
		case MaskPadded:
			grow = append(grow, e.Padding().NonNegative())
		}
	}

	w, h := img.Bounds()
	inside := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inside[y*w+x] = silhouette.Alpha(x, y) > 0
		}
	}
	keep := inside
	if len(grow) > 0 {
		keep = make([]bool, w*h)
		copy(keep, inside)
		for _, p := range grow {
			d := dilate(inside, w, h, p)
			for i, v := range d {
				keep[i] = keep[i] || v
			}
		}
	}

	pix := img.Pix()
	for i, k := range keep {
		if !k {
			clear(pix[i*4 : i*4+4])
		}
	}
}

// dilate grows a w x h boolean region so that a pixel is set when the region
// has a pixel at most p.Left to its right, p.Right to its left, p.Top below
// or p.Bottom above it. That is the area an effect with padding p can reach
// from the region.
func dilate(region []bool, w, h int, p Padding) []bool {
	rows := make([]bool, w*h)
	for y := 0; y < h; y++ {
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x]
			if region[y*w+x] {
				prefix[x+1]++
			}
		}
		for x := 0; x < w; x++ {
			lo := max(x-p.Right, 0)
			hi := min(x+p.Left, w-1)
			rows[y*w+x] = prefix[hi+1]-prefix[lo] > 0
		}
	}

	out := make([]bool, w*h)
	prefix := make([]int, h+1)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y]
			if rows[y*w+x] {
				prefix[y+1]++
			}
		}
		for y := 0; y < h; y++ {
			lo := max(y-p.Bottom, 0)
			hi := min(y+p.Top, h-1)
			out[y*w+x] = prefix[hi+1]-prefix[lo] > 0
		}
	}
	return out
}
