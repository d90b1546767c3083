package frame

import (
	"fmt"
	"math"
)

// frameSizeMap returns the number of bytes a frame occupies in the given format.
// Dimensions have already been validated when these run.
var frameSizeMap = map[Format]frameSizeFunc{
	FormatNV12:  frameSizeNV12,
	FormatNV21:  frameSizeNV12, // NV12 and NV21 have the same frame size
	FormatI420:  frameSizeI420,
	FormatYUY2:  frameSizeYUY2,
	FormatUYVY:  frameSizeYUY2, // UYVY and YUY2 have the same frame size
	FormatRGB24: frameSizeRGB24,
}

type frameSizeFunc func(width, height int) int

func frameSizeNV12(width, height int) int {
	yi := width * height
	ci := yi + width*height/2
	return ci
}

func frameSizeI420(width, height int) int {
	yi := width * height
	cbi := yi + width*height/4
	cri := cbi + width*height/4
	return cri
}

func frameSizeYUY2(width, height int) int {
	return 2 * width * height
}

func frameSizeRGB24(width, height int) int {
	return 3 * width * height
}

// subsampling reports whether f halves chroma horizontally and vertically.
func subsampling(f Format) (horizontal, vertical bool) {
	switch f {
	case FormatNV12, FormatNV21, FormatI420:
		return true, true
	case FormatYUY2, FormatUYVY:
		return true, false
	}
	return false, false
}

// ValidateDimensions checks that width and height can describe a frame in format f.
func ValidateDimensions(f Format, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d must be positive", ErrInvalidDimensions, width, height)
	}
	// 3 bytes per pixel is the largest frame size of any format.
	if height > math.MaxInt/3/width {
		return fmt.Errorf("%w: %dx%d is too large", ErrInvalidDimensions, width, height)
	}

	horizontal, vertical := subsampling(f)
	if horizontal && width%2 != 0 {
		return fmt.Errorf("%w: %s width %d must be even", ErrInvalidDimensions, f, width)
	}
	if vertical && height%2 != 0 {
		return fmt.Errorf("%w: %s height %d must be even", ErrInvalidDimensions, f, height)
	}
	return nil
}

// FrameSize returns the exact number of bytes of a width x height frame in format f.
func FrameSize(f Format, width, height int) (int, error) {
	size, ok := frameSizeMap[f]
	if !ok {
		return 0, fmt.Errorf("%s is not supported", f)
	}
	if err := ValidateDimensions(f, width, height); err != nil {
		return 0, err
	}
	return size(width, height), nil
}

// validate checks dimensions and that frame holds exactly one frame.
func validate(f Format, frame []byte, width, height int) error {
	size, err := FrameSize(f, width, height)
	if err != nil {
		return err
	}
	if len(frame) != size {
		return fmt.Errorf("%w: frame length (%d) not expected size (%d)", ErrInvalidBufferLength, len(frame), size)
	}
	return nil
}
