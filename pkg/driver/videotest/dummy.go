// Package videotest provides a dummy raw frame source for testing. It renders
// SMPTE-like colour bars over a gray gradation and a noise patch.
package videotest

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pion/rawframe/pkg/driver"
	"github.com/pion/rawframe/pkg/frame"
	"github.com/pion/rawframe/pkg/prop"
)

// Label is the label the source is registered under.
const Label = "VideoTest"

func init() {
	driver.GetManager().Register(
		New(),
		driver.Info{Label: Label, DeviceType: driver.Test},
	)
}

// Full range YCbCr colour bars: white, yellow, cyan, green, magenta, red, blue.
var colors = [][3]byte{
	{235, 128, 128},
	{210, 16, 146},
	{170, 166, 16},
	{145, 54, 34},
	{107, 202, 222},
	{82, 90, 240},
	{41, 240, 110},
}

type dummy struct {
	random *rand.Rand
}

// New returns an unregistered test pattern source.
func New() driver.Adapter {
	return &dummy{}
}

func (d *dummy) Open() error {
	// Same seed on every open, so frames are reproducible.
	d.random = rand.New(rand.NewSource(0))
	return nil
}

func (d *dummy) Close() error {
	return nil
}

// ReadFrame renders one NV12 or NV21 frame.
func (d *dummy) ReadFrame(ctx context.Context, p prop.Video) ([]byte, error) {
	if p.FrameFormat != frame.FormatNV12 && p.FrameFormat != frame.FormatNV21 {
		return nil, fmt.Errorf("videotest: %s is not supported", p.FrameFormat)
	}
	size, err := p.FrameSize()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	yy := buf[:p.Width*p.Height]
	uv := buf[p.Width*p.Height:]
	cbi, cri := 0, 1
	if p.FrameFormat == frame.FormatNV21 {
		cbi, cri = 1, 0
	}

	hColorBarEnd := p.Height * 3 / 4
	wGradationEnd := p.Width * 5 / 7
	for y := 0; y < p.Height; y++ {
		yi := p.Width * y
		// Each chroma row covers two luma rows, Cb and Cr interleaved.
		ci := p.Width * (y / 2)
		for x := 0; x < p.Width; x++ {
			var c [3]byte
			switch {
			case y < hColorBarEnd:
				// Color bar
				c = colors[x*len(colors)/p.Width]
				c[0] = uint8(uint16(c[0]) * 75 / 100)
			case x < wGradationEnd:
				// Gray gradation
				c = [3]byte{uint8(x * 255 / wGradationEnd), 128, 128}
			default:
				// Noise area
				c = [3]byte{uint8(d.random.Int31n(2) * 255), 128, 128}
			}
			yy[yi+x] = c[0]
			if y%2 == 0 && x%2 == 0 {
				uv[ci+x+cbi] = c[1]
				uv[ci+x+cri] = c[2]
			}
		}
	}
	return buf, nil
}

// Properties lists common sizes, any even size can be read.
func (d *dummy) Properties() []prop.Video {
	var props []prop.Video
	for _, f := range []frame.Format{frame.FormatNV12, frame.FormatNV21} {
		for _, size := range [][2]int{{640, 480}, {1280, 720}, {1920, 1080}} {
			props = append(props, prop.Video{Width: size[0], Height: size[1], FrameFormat: f})
		}
	}
	return props
}
