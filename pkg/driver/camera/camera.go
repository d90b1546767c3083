/*
Package camera provides a V4L2 raw frame source.

Every device found under /dev/v4l/by-path is registered with its link name as
label. If that directory is not available (for example in a docker container
without bindings in /dev/v4l/by-path/), /dev/video* nodes are registered instead.
Devices that are not discovered can still be opened with New.
*/
package camera

import (
	"github.com/pion/rawframe/pkg/frame"
)

// fourcc packs a V4L2 pixel format code the way v4l2_fourcc does.
func fourcc(code string) uint32 {
	return uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24
}

var pixelFormats = map[uint32]frame.Format{
	fourcc("NV12"): frame.FormatNV12,
	fourcc("NV21"): frame.FormatNV21,
	fourcc("YU12"): frame.FormatI420,
	fourcc("YUYV"): frame.FormatYUYV,
	fourcc("UYVY"): frame.FormatUYVY,
	fourcc("RGB3"): frame.FormatRGB24,
}

func reversePixelFormats() map[frame.Format]uint32 {
	reversed := make(map[frame.Format]uint32, len(pixelFormats))
	for k, v := range pixelFormats {
		reversed[v] = k
	}
	return reversed
}
