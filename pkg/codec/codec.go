package codec

import (
	"image"
	"io"
)

// ImageEncoder writes a single still image in a specific file format.
type ImageEncoder interface {
	Encode(w io.Writer, img image.Image) error
}

// ImageEncoderFunc is a proxy type for ImageEncoder
type ImageEncoderFunc func(w io.Writer, img image.Image) error

func (f ImageEncoderFunc) Encode(w io.Writer, img image.Image) error {
	return f(w, img)
}

// ImageSetting holds the format independent knobs of an encoder.
type ImageSetting struct {
	// Quality in [1, 100], only used by lossy formats. Zero selects the format default.
	Quality int
}

// ImageEncoderBuilder builds an encoder from a setting. Each codec package
// registers one under its format name.
type ImageEncoderBuilder interface {
	BuildImageEncoder(s ImageSetting) (ImageEncoder, error)
}
