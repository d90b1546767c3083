// Package rawfile provides a frame source backed by a file holding exactly one
// header-less raw frame, such as the dump of a V4L2 capture buffer.
package rawfile

import (
	"context"
	"os"

	"github.com/pion/rawframe/pkg/driver"
	mio "github.com/pion/rawframe/pkg/io"
	"github.com/pion/rawframe/pkg/prop"
)

type rawFile struct {
	path string
}

// New returns an adapter reading the raw frame stored at path.
func New(path string) driver.Adapter {
	return &rawFile{path: path}
}

// Open only checks that the file exists, it is read on every ReadFrame.
func (f *rawFile) Open() error {
	if _, err := os.Stat(f.path); err != nil {
		return &mio.FileError{Op: "open", Path: f.path, Err: err}
	}
	return nil
}

func (f *rawFile) Close() error {
	return nil
}

// ReadFrame returns the whole file. The file carries no header, so p is only
// known to the caller; size checks happen when the frame is decoded.
func (f *rawFile) ReadFrame(ctx context.Context, p prop.Video) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mio.ReadFile(f.path)
}

func (f *rawFile) Properties() []prop.Video {
	return nil
}
