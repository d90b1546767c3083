package frame

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is not positive, or is
	// odd for a format that subsamples chroma in that direction.
	ErrInvalidDimensions = errors.New("frame: invalid dimensions")
	// ErrInvalidBufferLength is returned when a raw frame is not exactly the size
	// its format and dimensions require.
	ErrInvalidBufferLength = errors.New("frame: invalid buffer length")
)
