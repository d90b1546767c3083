package video

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

var scalers = map[string]Scaler{
	"nearest":         ScalerNearestNeighbor,
	"approx-bilinear": ScalerApproxBiLinear,
	"bilinear":        ScalerBiLinear,
	"catmull-rom":     ScalerCatmullRom,
}

var errUnsupportedSubsampleRatio = errors.New("scaling: unsupported subsample ratio")

// ParseScaler returns the scaling algorithm registered under name.
func ParseScaler(name string) (Scaler, error) {
	s, ok := scalers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("scaling: unknown scaler %q, expected one of %s",
			name, strings.Join(ScalerNames(), ", "))
	}
	return s, nil
}

// ScalerNames returns the names accepted by ParseScaler.
func ScalerNames() []string {
	names := make([]string, 0, len(scalers))
	for name := range scalers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// chromaBounds returns the rectangle covered by the chroma planes of an
// image.YCbCr with luma bounds r. It follows the plane sizes image.NewYCbCr uses.
func chromaBounds(r image.Rectangle, sr image.YCbCrSubsampleRatio) (image.Rectangle, error) {
	switch sr {
	case image.YCbCrSubsampleRatio444:
		return r, nil
	case image.YCbCrSubsampleRatio422:
		return image.Rect(r.Min.X/2, r.Min.Y, (r.Max.X+1)/2, r.Max.Y), nil
	case image.YCbCrSubsampleRatio420:
		return image.Rect(r.Min.X/2, r.Min.Y/2, (r.Max.X+1)/2, (r.Max.Y+1)/2), nil
	case image.YCbCrSubsampleRatio440:
		return image.Rect(r.Min.X, r.Min.Y/2, r.Max.X, (r.Max.Y+1)/2), nil
	case image.YCbCrSubsampleRatio411:
		return image.Rect(r.Min.X/4, r.Min.Y, (r.Max.X+3)/4, r.Max.Y), nil
	case image.YCbCrSubsampleRatio410:
		return image.Rect(r.Min.X/4, r.Min.Y/2, (r.Max.X+3)/4, (r.Max.Y+1)/2), nil
	}
	return image.Rectangle{}, fmt.Errorf("%w: %s", errUnsupportedSubsampleRatio, sr)
}

// upsampleChroma stores a 4:4:4 copy of src in dst. The luma plane is shared with
// src, the chroma planes are resampled to full resolution with scaler.
func upsampleChroma(dst, src *image.YCbCr, scaler Scaler) error {
	cbounds, err := chromaBounds(src.Rect, src.SubsampleRatio)
	if err != nil {
		return err
	}

	r := src.Rect
	n := r.Dx() * r.Dy()
	if cap(dst.Cb) < n || cap(dst.Cr) < n {
		buf := make([]uint8, 2*n)
		dst.Cb = buf[:n:n]
		dst.Cr = buf[n:]
	}
	dst.Cb = dst.Cb[:n]
	dst.Cr = dst.Cr[:n]
	dst.Y = src.Y
	dst.YStride = src.YStride
	dst.CStride = r.Dx()
	dst.SubsampleRatio = image.YCbCrSubsampleRatio444
	dst.Rect = r

	in := &chromaPlanes{
		cb: &image.Gray{Pix: src.Cb, Stride: src.CStride, Rect: cbounds},
		cr: &image.Gray{Pix: src.Cr, Stride: src.CStride, Rect: cbounds},
	}
	out := &chromaPlanes{
		cb: &image.Gray{Pix: dst.Cb, Stride: dst.CStride, Rect: r},
		cr: &image.Gray{Pix: dst.Cr, Stride: dst.CStride, Rect: r},
	}
	scaler.Scale(out, r, in, cbounds, draw.Src, nil)
	return nil
}

// UpsampleChroma returns a transform that resamples the chroma planes of
// subsampled *image.YCbCr frames to full resolution, producing 4:4:4 frames.
// Setting scaler=nil to use default scaler. (ScalerNearestNeighbor)
// Frames that are already 4:4:4, or are not YCbCr, pass through unchanged.
//
// The returned frame shares its luma plane with the incoming frame and is
// reused by the next Read.
func UpsampleChroma(scaler Scaler) TransformFunc {
	if scaler == nil {
		scaler = ScalerNearestNeighbor
	}

	return func(r Reader) Reader {
		var dst image.YCbCr
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}

			yuvImg, ok := img.(*image.YCbCr)
			if !ok || yuvImg.SubsampleRatio == image.YCbCrSubsampleRatio444 {
				return img, release, nil
			}

			if err := upsampleChroma(&dst, yuvImg, scaler); err != nil {
				release()
				return nil, func() {}, err
			}
			return &dst, release, nil
		})
	}
}
