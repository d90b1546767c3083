// Command nv12rgb converts one raw camera frame, read from a file or captured
// from a V4L2 camera, into an RGB image file and optionally serves it for
// display in a browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pion/logging"
	flag "github.com/spf13/pflag"

	"github.com/pion/rawframe"
	mlogging "github.com/pion/rawframe/internal/logging"
	"github.com/pion/rawframe/pkg/codec"
	"github.com/pion/rawframe/pkg/driver"
	"github.com/pion/rawframe/pkg/driver/camera"
	"github.com/pion/rawframe/pkg/driver/rawfile"
	"github.com/pion/rawframe/pkg/driver/videotest"
	"github.com/pion/rawframe/pkg/frame"
	mio "github.com/pion/rawframe/pkg/io"
	"github.com/pion/rawframe/pkg/preview"
	"github.com/pion/rawframe/pkg/prop"

	// Image encoders register themselves on import
	_ "github.com/pion/rawframe/pkg/codec/bmp"
	_ "github.com/pion/rawframe/pkg/codec/gif"
	_ "github.com/pion/rawframe/pkg/codec/jpeg"
	_ "github.com/pion/rawframe/pkg/codec/png"
)

func main() {
	c, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "nv12rgb:", err)
		os.Exit(2)
	}

	if c.debug {
		mlogging.SetLevel(logging.LogLevelDebug)
	}
	log := mlogging.NewLogger("nv12rgb")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c, log); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, c *config, log logging.LeveledLogger) error {
	d, err := openSource(c)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warnf("failed to close %s: %v", d.Info().Label, err)
		}
	}()

	p, err := selectProperties(d, c.properties())
	if err != nil {
		return err
	}
	log.Infof("reading %s frame from %s", p, d.Info().Label)

	conv, err := rawframe.NewConverter(
		rawframe.WithFormat(p.FrameFormat),
		rawframe.WithScaler(c.scaler),
	)
	if err != nil {
		return err
	}
	img, err := capture(ctx, c, conv, d, p, log)
	if err != nil {
		return err
	}

	enc, err := codec.BuildImageEncoder(c.encoding, codec.ImageSetting{Quality: c.quality})
	if err != nil {
		return err
	}
	if err := mio.WriteFile(c.output, func(w io.Writer) error {
		return enc.Encode(w, img)
	}); err != nil {
		return err
	}
	log.Infof("wrote %s image to %s", c.encoding, c.output)

	if c.serve == "" {
		return nil
	}
	srv, err := preview.NewServer(fmt.Sprintf("%s (%s)", d.Info().Label, p))
	if err != nil {
		return err
	}
	if _, err := srv.Update(img); err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, c.serve)
}

// capture reads and converts one frame. With --raw-output the frame is saved
// as read, before conversion, so it can be replayed with --source=file.
func capture(ctx context.Context, c *config, conv *rawframe.Converter, d driver.Driver, p prop.Video, log logging.LeveledLogger) (*frame.RGB24Img, error) {
	if c.rawOut == "" {
		return conv.Capture(ctx, d, p.Width, p.Height)
	}

	raw, err := d.ReadFrame(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s frame: %w", p, err)
	}
	if err := mio.WriteFile(c.rawOut, func(w io.Writer) error {
		_, err := w.Write(raw)
		return err
	}); err != nil {
		return nil, err
	}
	log.Infof("wrote %d bytes of raw %s to %s", len(raw), p.FrameFormat, c.rawOut)

	return conv.Convert(raw, p.Width, p.Height)
}

// openSource finds and opens the driver the config asks for.
func openSource(c *config) (driver.Driver, error) {
	var d driver.Driver
	switch c.source {
	case sourceFile:
		d = driver.Wrap(rawfile.New(c.input), driver.Info{Label: c.input, DeviceType: driver.File})
	case sourceTest:
		d = firstDriver(driver.FilterLabel(videotest.Label))
	case sourceCamera:
		switch {
		case c.device == "":
			d = firstDriver(driver.FilterDeviceType(driver.Camera))
		case strings.HasPrefix(c.device, "/dev/"):
			d = driver.Wrap(camera.New(c.device), driver.Info{Label: c.device, DeviceType: driver.Camera})
		default:
			d = firstDriver(driver.FilterAnd(
				driver.FilterDeviceType(driver.Camera),
				driver.FilterLabel(c.device),
			))
		}
	}
	if d == nil {
		return nil, fmt.Errorf("no %s source found", c.source)
	}

	if err := d.Open(); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.Info().Label, err)
	}
	return d, nil
}

func firstDriver(filter driver.FilterFn) driver.Driver {
	drivers := driver.GetManager().Query(filter)
	if len(drivers) == 0 {
		return nil
	}
	return drivers[0]
}

// selectProperties picks the mode of d closest to want. The frame format has
// to match exactly, the size is only a preference. Sources without a mode list
// take want as is.
func selectProperties(d driver.Driver, want prop.Video) (prop.Video, error) {
	props := d.Properties()
	if len(props) == 0 {
		return want, nil
	}

	constraints := prop.VideoConstraints{
		Width:       prop.Int(want.Width),
		Height:      prop.Int(want.Height),
		FrameFormat: prop.FrameFormatExact(want.FrameFormat),
	}
	p, ok := constraints.Best(props)
	if !ok {
		return prop.Video{}, fmt.Errorf("%s does not support %s", d.Info().Label, want.FrameFormat)
	}
	return p, nil
}
