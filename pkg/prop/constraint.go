package prop

import (
	"math"

	"github.com/pion/rawframe/pkg/frame"
)

// IntConstraint scores an int property. Compare returns a fitness distance in
// [0, 1] and whether the value is acceptable at all.
type IntConstraint interface {
	Compare(int) (float64, bool)
}

// Int specifies an ideal value. Any value is acceptable, closer ones score better.
type Int int

func (i Int) Compare(a int) (float64, bool) {
	if int(i) == a {
		return 0.0, true
	}
	return math.Abs(float64(a-int(i))) / math.Max(math.Abs(float64(a)), math.Abs(float64(i))), true
}

// IntExact accepts only the given value.
type IntExact int

func (i IntExact) Compare(a int) (float64, bool) {
	if int(i) == a {
		return 0.0, true
	}
	return 1.0, false
}

// IntRanged accepts values in [Min, Max], zero bounds are open. Ideal, when set,
// ranks the values inside the range.
type IntRanged struct {
	Min   int
	Max   int
	Ideal int
}

func (i IntRanged) Compare(a int) (float64, bool) {
	if i.Min != 0 && i.Min > a {
		return 1.0, false
	}
	if i.Max != 0 && i.Max < a {
		return 1.0, false
	}
	if i.Ideal == 0 {
		return 0.0, true
	}
	switch {
	case a == i.Ideal:
		return 0.0, true
	case a < i.Ideal:
		if i.Min == 0 {
			return 0.0, true
		}
		return float64(i.Ideal-a) / float64(i.Ideal-i.Min), true
	default:
		if i.Max == 0 {
			return 0.0, true
		}
		return float64(a-i.Ideal) / float64(i.Max-i.Ideal), true
	}
}

// FrameFormatConstraint scores a frame format the way IntConstraint scores ints.
type FrameFormatConstraint interface {
	Compare(frame.Format) (float64, bool)
}

// FrameFormat prefers the given format but accepts any.
type FrameFormat frame.Format

func (f FrameFormat) Compare(a frame.Format) (float64, bool) {
	if frame.Format(f) == a {
		return 0.0, true
	}
	return 1.0, true
}

// FrameFormatExact accepts only the given format.
type FrameFormatExact frame.Format

func (f FrameFormatExact) Compare(a frame.Format) (float64, bool) {
	if frame.Format(f) == a {
		return 0.0, true
	}
	return 1.0, false
}

// FrameFormatOneOf accepts any of the listed formats.
type FrameFormatOneOf []frame.Format

func (f FrameFormatOneOf) Compare(a frame.Format) (float64, bool) {
	for _, ff := range f {
		if ff == a {
			return 0.0, true
		}
	}
	return 1.0, false
}

// VideoConstraints describes the video a caller wants. Nil fields match anything.
type VideoConstraints struct {
	Width, Height IntConstraint
	FrameFormat   FrameFormatConstraint
}

// FitnessDistance is an implementation for https://w3c.github.io/mediacapture-main/#dfn-fitness-distance
// It returns false when v violates a hard constraint.
func (c VideoConstraints) FitnessDistance(v Video) (float64, bool) {
	var dist float64
	ok := true
	add := func(d float64, match bool) {
		dist += d
		ok = ok && match
	}

	if c.Width != nil {
		add(c.Width.Compare(v.Width))
	}
	if c.Height != nil {
		add(c.Height.Compare(v.Height))
	}
	if c.FrameFormat != nil {
		add(c.FrameFormat.Compare(v.FrameFormat))
	}
	return dist, ok
}

// Best returns the candidate with the lowest fitness distance that satisfies
// every hard constraint. Ties keep the earlier candidate.
func (c VideoConstraints) Best(candidates []Video) (Video, bool) {
	var best Video
	bestDist := math.Inf(1)
	for _, v := range candidates {
		dist, ok := c.FitnessDistance(v)
		if !ok || dist >= bestDist {
			continue
		}
		best, bestDist = v, dist
	}
	return best, !math.IsInf(bestDist, 1)
}
