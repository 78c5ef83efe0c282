package output

import (
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"strings"

	"github.com/gogpu/fontc"
	"github.com/gogpu/fontc/internal/image"
)

// ErrBadChannels is returned for channel lists that are not one to four of
// R, G, B, A and L.
var ErrBadChannels = errors.New("output: bad texture channels")

// channelIndex maps a channel letter to its index in an RGBA pixel. L
// reads the red channel.
var channelIndex = map[byte]int{'R': 0, 'G': 1, 'B': 2, 'A': 3, 'L': 0}

// Channels converts the atlas into an image holding only the listed
// channels, in order.
//
// One channel gives a gray image. Two give gray plus alpha, three an
// opaque RGB image and four an RGBA image.
func Channels(atlas *fontc.ImageBuf, channels string) (stdimage.Image, error) {
	channels = strings.ToUpper(channels)
	if channels == "" || len(channels) > 4 {
		return nil, fmt.Errorf("%w: %q", ErrBadChannels, channels)
	}
	idx := make([]int, len(channels))
	for i := 0; i < len(channels); i++ {
		c, ok := channelIndex[channels[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadChannels, channels)
		}
		idx[i] = c
	}

	w, h := atlas.Bounds()
	rect := stdimage.Rect(0, 0, w, h)
	pix := atlas.Pix()
	if len(idx) == 1 {
		out := stdimage.NewGray(rect)
		for i := range out.Pix {
			out.Pix[i] = image.ToByte(pix[4*i+idx[0]])
		}
		return out, nil
	}

	out := stdimage.NewNRGBA(rect)
	for i := 0; i < w*h; i++ {
		src := pix[4*i : 4*i+4]
		dst := out.Pix[4*i : 4*i+4]
		switch len(idx) {
		case 2:
			v := image.ToByte(src[idx[0]])
			dst[0], dst[1], dst[2], dst[3] = v, v, v, image.ToByte(src[idx[1]])
		case 3:
			for c := 0; c < 3; c++ {
				dst[c] = image.ToByte(src[idx[c]])
			}
			dst[3] = 0xff
		default:
			for c := 0; c < 4; c++ {
				dst[c] = image.ToByte(src[idx[c]])
			}
		}
	}
	return out, nil
}

// WriteTexture encodes the atlas with the given channels in the format
// named by ext (".png", ".bmp", ".tif" or ".tiff").
func WriteTexture(w io.Writer, atlas *fontc.ImageBuf, channels, ext string) error {
	img, err := Channels(atlas, channels)
	if err != nil {
		return err
	}
	return image.Encode(w, img, ext)
}

// SaveTexture writes the atlas to path, choosing the format from its
// extension.
func SaveTexture(path string, atlas *fontc.ImageBuf, channels string) error {
	img, err := Channels(atlas, channels)
	if err != nil {
		return err
	}
	if err := image.Save(path, img); err != nil {
		return err
	}
	fontc.Logger().Info("wrote texture", "path", path, "channels", strings.ToUpper(channels))
	return nil
}
