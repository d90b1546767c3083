package prop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/rawframe/pkg/frame"
)

// Video represents a raw video frame's properties
type Video struct {
	Width, Height int
	FrameFormat   frame.Format
}

func (v Video) String() string {
	return fmt.Sprintf("%dx%d %s", v.Width, v.Height, v.FrameFormat)
}

// FrameSize returns the number of bytes one frame with these properties occupies.
func (v Video) FrameSize() (int, error) {
	return frame.FrameSize(v.FrameFormat, v.Width, v.Height)
}

// ParseSize parses a geometry such as "640x480".
func ParseSize(s string) (width, height int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, expected <width>x<height>", s)
	}
	if width, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	if height, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	return width, height, nil
}
