package video

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/pion/rawframe/pkg/frame"
)

// Full range ITU-R BT.601 coefficients, as used by JFIF.
const (
	crToR = 1.402
	cbToG = 0.344136
	crToG = 0.714136
	cbToB = 1.772
)

// Chroma contributions indexed by the raw 8-bit sample.
var crR, cbG, crG, cbB [256]float64

func init() {
	for i := 0; i < 256; i++ {
		c := float64(i) - 128
		crR[i] = crToR * c
		cbG[i] = cbToG * c
		crG[i] = crToG * c
		cbB[i] = cbToB * c
	}
}

var errChromaSubsampled = errors.New("convert: chroma planes must be upsampled to 4:4:4 first")

func clamp(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// YCbCrToRGB converts a full range BT.601 Y'CbCr triple to RGB. Each channel is
// rounded to the nearest integer and clamped to [0, 255].
func YCbCrToRGB(y, cb, cr uint8) (uint8, uint8, uint8) {
	yy := float64(y)
	return clamp(yy + crR[cr]), clamp(yy - cbG[cb] - crG[cr]), clamp(yy + cbB[cb])
}

// Interleave packs a 4:4:4 image into dst as Y, Cb, Cr triples in row-major
// order and returns the packed slice. dst is grown when it is too small.
func Interleave(dst []byte, img *image.YCbCr) ([]byte, error) {
	if img.SubsampleRatio != image.YCbCrSubsampleRatio444 {
		return dst, fmt.Errorf("%w: got %s", errChromaSubsampled, img.SubsampleRatio)
	}

	r := img.Rect
	size := 3 * r.Dx() * r.Dy()
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		yi := img.YOffset(r.Min.X, y)
		ci := img.COffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			dst[i+0] = img.Y[yi+x]
			dst[i+1] = img.Cb[ci+x]
			dst[i+2] = img.Cr[ci+x]
			i += 3
		}
	}
	return dst, nil
}

// ycbcrToRGBInPlace rewrites packed Y, Cb, Cr triples as R, G, B triples.
func ycbcrToRGBInPlace(pix []byte) {
	for i := 0; i+2 < len(pix); i += 3 {
		pix[i+0], pix[i+1], pix[i+2] = YCbCrToRGB(pix[i+0], pix[i+1], pix[i+2])
	}
}

// imageToRGB24 converts src to *frame.RGB24Img and store it to dst
func imageToRGB24(dst *frame.RGB24Img, src image.Image) error {
	if dst == nil {
		panic("dst can't be nil")
	}

	if srcRGB, ok := src.(*frame.RGB24Img); ok {
		*dst = *srcRGB
		return nil
	}

	bounds := src.Bounds()
	dy := bounds.Dy()
	dx := bounds.Dx()

	if srcYCbCr, ok := src.(*image.YCbCr); ok {
		pix, err := Interleave(dst.Pix, srcYCbCr)
		if err != nil {
			return err
		}
		ycbcrToRGBInPlace(pix)
		dst.Pix = pix
		dst.Stride = 3 * dx
		dst.Rect = bounds
		return nil
	}

	if cap(dst.Pix) < 3*dx*dy {
		dst.Pix = make([]uint8, 3*dx*dy)
	}
	dst.Pix = dst.Pix[:3*dx*dy]
	dst.Stride = 3 * dx
	dst.Rect = bounds

	i := 0
	for yi := bounds.Min.Y; yi < bounds.Max.Y; yi++ {
		for xi := bounds.Min.X; xi < bounds.Max.X; xi++ {
			r, g, b, _ := src.At(xi, yi).RGBA()
			dst.Pix[i+0] = uint8(r / 0x100)
			dst.Pix[i+1] = uint8(g / 0x100)
			dst.Pix[i+2] = uint8(b / 0x100)
			i += 3
		}
	}
	return nil
}

// ToRGB24 converts r to a new reader that will output images in packed RGB24
// format. YCbCr frames must be 4:4:4, see UpsampleChroma.
func ToRGB24(r Reader) Reader {
	var dst frame.RGB24Img
	return ReaderFunc(func() (image.Image, func(), error) {
		img, release, err := r.Read()
		if err != nil {
			return nil, func() {}, err
		}

		err = imageToRGB24(&dst, img)
		release()
		if err != nil {
			return nil, func() {}, err
		}
		return &dst, func() {}, nil
	})
}
