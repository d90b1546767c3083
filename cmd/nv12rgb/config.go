package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/pion/rawframe/pkg/codec"
	"github.com/pion/rawframe/pkg/frame"
	"github.com/pion/rawframe/pkg/io/video"
	"github.com/pion/rawframe/pkg/prop"
)

const (
	sourceFile   = "file"
	sourceCamera = "camera"
	sourceTest   = "test"
)

type config struct {
	source   string
	input    string
	device   string
	width    int
	height   int
	format   frame.Format
	scaler   video.Scaler
	output   string
	rawOut   string
	encoding string
	quality  int
	serve    string
	debug    bool
}

func (c *config) properties() prop.Video {
	return prop.Video{Width: c.width, Height: c.height, FrameFormat: c.format}
}

const usageHeader = `Convert a raw camera frame to an image

Usage: nv12rgb [OPTION]...

`

// parseFlags parses args, without the program name, into a config. Usage is
// written to out when the flags are wrong or --help is given.
func parseFlags(args []string, out io.Writer) (*config, error) {
	var (
		c          config
		size       string
		formatName string
		scalerName string
	)

	fs := flag.NewFlagSet("nv12rgb", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(out, usageHeader)
		fs.PrintDefaults()
	}

	fs.StringVar(&c.source, "source", sourceFile, "Frame source: file, camera or test")
	fs.StringVarP(&c.input, "input", "i", "frame.raw", "Raw frame file, used with --source=file")
	fs.StringVarP(&c.device, "device", "d", "", "Camera label or device node, used with --source=camera (default: first camera)")
	fs.IntVarP(&c.width, "width", "w", 640, "Frame width, in pixels")
	fs.IntVarP(&c.height, "height", "h", 480, "Frame height, in pixels")
	fs.StringVar(&size, "size", "", "Frame size as <width>x<height>, overrides --width and --height")
	fs.StringVarP(&formatName, "format", "f", string(frame.FormatNV12), "Raw frame layout: "+joinFormats())
	fs.StringVar(&scalerName, "scaler", "nearest", "Chroma upsampling: "+strings.Join(video.ScalerNames(), ", "))
	fs.StringVarP(&c.output, "output", "o", "frame.png", `Output image, "-" for stdout`)
	fs.StringVar(&c.rawOut, "raw-output", "", `Also save the raw frame as read from the source, "-" for stdout`)
	fs.StringVarP(&c.encoding, "encoding", "e", "", "Output image format: "+strings.Join(codec.Names(), ", ")+" (default: from the output extension)")
	fs.IntVarP(&c.quality, "quality", "q", 0, "Quality of lossy encodings, 1 to 100 (default: encoder default)")
	fs.StringVar(&c.serve, "serve", "", "Serve the image for display on this address, e.g. localhost:8080")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	switch c.source {
	case sourceFile, sourceCamera, sourceTest:
	default:
		return nil, fmt.Errorf("unknown source %q", c.source)
	}

	if size != "" {
		w, h, err := prop.ParseSize(size)
		if err != nil {
			return nil, err
		}
		c.width, c.height = w, h
	}

	var err error
	if c.format, err = frame.ParseFormat(formatName); err != nil {
		return nil, err
	}
	if _, err := c.properties().FrameSize(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.properties(), err)
	}
	if c.scaler, err = video.ParseScaler(scalerName); err != nil {
		return nil, err
	}

	if c.encoding == "" {
		if c.output == "-" {
			c.encoding = "png"
		} else if c.encoding, err = codec.FormatFromPath(c.output); err != nil {
			return nil, err
		}
	}
	if !contains(codec.Names(), c.encoding) {
		return nil, fmt.Errorf("unknown encoding %q", c.encoding)
	}
	if c.output == "-" && c.rawOut == "-" {
		return nil, fmt.Errorf("--output and --raw-output can't both be stdout")
	}
	if c.quality < 0 || c.quality > 100 {
		return nil, fmt.Errorf("quality %d out of range", c.quality)
	}

	return &c, nil
}

func joinFormats() string {
	names := make([]string, len(frame.Formats))
	for i, f := range frame.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
