// Package gif registers a single frame GIF encoder. Colors are quantized to a
// palette, so the output is lossy.
package gif

import (
	"fmt"
	"image"
	"image/gif"
	"io"

	"github.com/pion/rawframe/pkg/codec"
)

func init() {
	p, _ := NewParams()
	codec.Register("gif", &p)
}

// Params stores GIF specific encoding parameters.
type Params struct {
	// NumColors is the maximum palette size, from 1 to 256.
	NumColors int
}

// NewParams returns default gif codec specific parameters.
func NewParams() (Params, error) {
	return Params{
		NumColors: 256,
	}, nil
}

func (p *Params) BuildImageEncoder(s codec.ImageSetting) (codec.ImageEncoder, error) {
	if p.NumColors < 1 || p.NumColors > 256 {
		return nil, fmt.Errorf("gif: palette size %d out of range [1, 256]", p.NumColors)
	}

	opts := &gif.Options{NumColors: p.NumColors}
	return codec.ImageEncoderFunc(func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, opts)
	}), nil
}
