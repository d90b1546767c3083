// Package bmp registers an uncompressed BMP still image encoder.
package bmp

import (
	"golang.org/x/image/bmp"

	"github.com/pion/rawframe/pkg/codec"
)

func init() {
	codec.Register("bmp", &Params{}, "dib")
}

// Params stores BMP specific encoding parameters. BMP has none.
type Params struct{}

func (p *Params) BuildImageEncoder(s codec.ImageSetting) (codec.ImageEncoder, error) {
	return codec.ImageEncoderFunc(bmp.Encode), nil
}
