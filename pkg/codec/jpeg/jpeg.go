// Package jpeg registers a baseline JPEG still image encoder.
package jpeg

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/pion/rawframe/pkg/codec"
)

func init() {
	p, _ := NewParams()
	codec.Register("jpeg", &p, "jpg", "jpe")
}

// Params stores JPEG specific encoding parameters.
type Params struct {
	// Quality ranges from 1 to 100 inclusive, higher is better.
	Quality int
}

// NewParams returns default jpeg codec specific parameters.
func NewParams() (Params, error) {
	return Params{
		Quality: jpeg.DefaultQuality,
	}, nil
}

// BuildImageEncoder implements codec.ImageEncoderBuilder. A non zero
// s.Quality overrides p.Quality.
func (p *Params) BuildImageEncoder(s codec.ImageSetting) (codec.ImageEncoder, error) {
	quality := p.Quality
	if s.Quality != 0 {
		quality = s.Quality
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg: quality %d out of range [1, 100]", quality)
	}

	opts := &jpeg.Options{Quality: quality}
	return codec.ImageEncoderFunc(func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, opts)
	}), nil
}
