// Package png registers a lossless PNG still image encoder.
package png

import (
	"image/png"

	"github.com/pion/rawframe/pkg/codec"
)

func init() {
	p, _ := NewParams()
	codec.Register("png", &p)
}

// Params stores PNG specific encoding parameters.
type Params struct {
	CompressionLevel png.CompressionLevel
}

// NewParams returns default png codec specific parameters.
func NewParams() (Params, error) {
	return Params{
		CompressionLevel: png.DefaultCompression,
	}, nil
}

// BuildImageEncoder implements codec.ImageEncoderBuilder. PNG is lossless, so
// the quality setting is ignored.
func (p *Params) BuildImageEncoder(s codec.ImageSetting) (codec.ImageEncoder, error) {
	enc := &png.Encoder{CompressionLevel: p.CompressionLevel}
	return codec.ImageEncoderFunc(enc.Encode), nil
}
