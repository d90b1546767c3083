package driver

import (
	"context"
	"errors"

	"github.com/pion/rawframe/pkg/prop"
)

// ErrUnsupported is returned by adapters that have no backend on the current platform.
var ErrUnsupported = errors.New("driver: not supported on this platform")

type OpenCloser interface {
	Open() error
	Close() error
}

type Propertier interface {
	// Properties lists the frames the source can produce. It is only
	// meaningful after Open. An empty list means any property is accepted.
	Properties() []prop.Video
}

// FrameReader captures a single raw frame laid out as p describes.
type FrameReader interface {
	ReadFrame(ctx context.Context, p prop.Video) ([]byte, error)
}

// Adapter is implemented by every raw frame source.
type Adapter interface {
	OpenCloser
	Propertier
	FrameReader
}

type Info struct {
	Label      string
	DeviceType DeviceType
}

// Driver is an Adapter wrapped with an identity and state tracking.
type Driver interface {
	Adapter
	ID() string
	Info() Info
	Status() State
}
