//go:build !linux

package camera

import (
	"context"

	"github.com/pion/rawframe/pkg/driver"
	"github.com/pion/rawframe/pkg/prop"
)

type camera struct{}

// New returns an adapter that fails to open, V4L2 is only available on Linux.
func New(path string) driver.Adapter {
	return &camera{}
}

func (c *camera) Open() error              { return driver.ErrUnsupported }
func (c *camera) Close() error             { return nil }
func (c *camera) Properties() []prop.Video { return nil }

func (c *camera) ReadFrame(ctx context.Context, p prop.Video) ([]byte, error) {
	return nil, driver.ErrUnsupported
}
