package camera

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blackjack/webcam"
	"github.com/pion/logging"

	mlogging "github.com/pion/rawframe/internal/logging"
	"github.com/pion/rawframe/pkg/driver"
	"github.com/pion/rawframe/pkg/frame"
	mio "github.com/pion/rawframe/pkg/io"
	"github.com/pion/rawframe/pkg/prop"
)

const (
	maxEmptyFrameCount = 5
	// Seconds to wait for the device to fill a buffer.
	readTimeout = 5
)

var (
	errReadTimeout = errors.New("camera: read timeout")
	errEmptyFrame  = errors.New("camera: empty frame")
	errNotOpened   = errors.New("camera: device is not opened")
)

// device is the part of *webcam.Webcam the camera drives.
type device interface {
	SetImageFormat(f webcam.PixelFormat, width, height uint32) (webcam.PixelFormat, uint32, uint32, error)
	GetSupportedFormats() map[webcam.PixelFormat]string
	GetSupportedFrameSizes(f webcam.PixelFormat) []webcam.FrameSize
	StartStreaming() error
	StopStreaming() error
	WaitForFrame(timeout uint32) error
	ReadFrame() ([]byte, error)
	Close() error
}

func openWebcam(path string) (device, error) {
	cam, err := webcam.Open(path)
	if err != nil {
		return nil, err
	}
	return cam, nil
}

// Camera implementation using v4l2
// Reference: https://linuxtv.org/downloads/v4l-dvb-apis/uapi/v4l/videodev.html#videodev
type camera struct {
	path            string
	open            func(path string) (device, error)
	cam             device
	reversedFormats map[frame.Format]uint32
	mutex           sync.Mutex
	log             logging.LeveledLogger
}

func init() {
	for label, path := range discover() {
		driver.GetManager().Register(New(path), driver.Info{
			Label:      label,
			DeviceType: driver.Camera,
		})
	}
}

// discover maps device labels to device node paths.
func discover() map[string]string {
	devices := make(map[string]string)

	searchPath := "/dev/v4l/by-path/"
	entries, err := os.ReadDir(searchPath)
	if err == nil && len(entries) > 0 {
		for _, entry := range entries {
			devices[entry.Name()] = filepath.Join(searchPath, entry.Name())
		}
		return devices
	}

	paths, _ := filepath.Glob("/dev/video*")
	for _, path := range paths {
		devices[filepath.Base(path)] = path
	}
	return devices
}

// New returns an adapter for the V4L2 device node at path.
func New(path string) driver.Adapter {
	return &camera{
		path:            path,
		open:            openWebcam,
		reversedFormats: reversePixelFormats(),
	}
}

func (c *camera) Open() error {
	cam, err := c.open(c.path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	c.cam = cam
	// Loggers pick up the level at creation, see logging.SetLevel.
	c.log = mlogging.NewLogger("camera")
	c.mutex.Unlock()
	return nil
}

func (c *camera) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cam == nil {
		return nil
	}
	err := c.cam.Close()
	c.cam = nil
	return err
}

// ReadFrame configures the device for p, streams until one frame arrives and
// returns a copy of it.
func (c *camera) ReadFrame(ctx context.Context, p prop.Video) ([]byte, error) {
	// Lock to avoid closing the device while a buffer is mapped
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cam == nil {
		return nil, errNotOpened
	}

	pf, ok := c.reversedFormats[p.FrameFormat]
	if !ok {
		return nil, fmt.Errorf("camera: %s is not supported", p.FrameFormat)
	}
	size, err := p.FrameSize()
	if err != nil {
		return nil, err
	}

	got, w, h, err := c.cam.SetImageFormat(webcam.PixelFormat(pf), uint32(p.Width), uint32(p.Height))
	if err != nil {
		return nil, err
	}
	if uint32(got) != pf || int(w) != p.Width || int(h) != p.Height {
		return nil, fmt.Errorf("camera: device negotiated %s %dx%d instead of %s",
			pixelFormats[uint32(got)], w, h, p)
	}
	c.log.Debugf("%s: streaming %s", c.path, p)

	if err := c.cam.StartStreaming(); err != nil {
		return nil, err
	}
	defer func() {
		if err := c.cam.StopStreaming(); err != nil {
			c.log.Warnf("%s: failed to stop streaming: %v", c.path, err)
		}
	}()

	// Wait until a frame is ready
	for i := 0; i < maxEmptyFrameCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := c.cam.WaitForFrame(readTimeout)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			return nil, errReadTimeout
		default:
			return nil, err
		}

		b, err := c.cam.ReadFrame()
		if err != nil {
			return nil, err
		}

		// Frame is empty.
		// Retry reading and return errEmptyFrame if it exceeds maxEmptyFrameCount.
		if len(b) == 0 {
			continue
		}
		if len(b) < size {
			return nil, fmt.Errorf("%w: device returned %d bytes, expected %d",
				frame.ErrInvalidBufferLength, len(b), size)
		}
		if len(b) > size {
			c.log.Debugf("%s: dropping %d bytes of padding", c.path, len(b)-size)
		}

		// move the memory from mmap to Go before streaming stops and the
		// buffer is unmapped.
		buf := make([]byte, size)
		if _, err := mio.Copy(buf, b[:size]); err != nil {
			return nil, err
		}
		return buf, nil
	}
	return nil, errEmptyFrame
}

func (c *camera) Properties() []prop.Video {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cam == nil {
		return nil
	}

	properties := make([]prop.Video, 0)
	for pf := range c.cam.GetSupportedFormats() {
		format, ok := pixelFormats[uint32(pf)]
		if !ok {
			continue
		}
		for _, frameSize := range c.cam.GetSupportedFrameSizes(pf) {
			properties = append(properties, prop.Video{
				Width:       int(frameSize.MaxWidth),
				Height:      int(frameSize.MaxHeight),
				FrameFormat: format,
			})
		}
	}
	return properties
}
