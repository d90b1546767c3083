package frame

import (
	"image"
)

func decodeNV12(frame []byte, width, height int) (image.Image, func(), error) {
	return decodeSemiPlanar(FormatNV12, frame, width, height)
}

func decodeNV21(frame []byte, width, height int) (image.Image, func(), error) {
	return decodeSemiPlanar(FormatNV21, frame, width, height)
}

// decodeSemiPlanar splits the interleaved chroma plane of NV12 (Cb first) or
// NV21 (Cr first) into two planes.
func decodeSemiPlanar(f Format, frame []byte, width, height int) (image.Image, func(), error) {
	if err := validate(f, frame, width, height); err != nil {
		return nil, func() {}, err
	}

	yi := width * height
	ci := yi / 4

	cb := make([]byte, ci)
	cr := make([]byte, ci)
	first, second := cb, cr
	if f == FormatNV21 {
		first, second = cr, cb
	}

	uv := frame[yi:]
	for i := 0; i < ci; i++ {
		first[i] = uv[2*i]
		second[i] = uv[2*i+1]
	}

	return &image.YCbCr{
		Y:              frame[:yi:yi],
		YStride:        width,
		Cb:             cb,
		Cr:             cr,
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}, func() {}, nil
}

func decodeI420(frame []byte, width, height int) (image.Image, func(), error) {
	if err := validate(FormatI420, frame, width, height); err != nil {
		return nil, func() {}, err
	}

	yi := width * height
	cbi := yi + width*height/4
	cri := cbi + width*height/4

	return &image.YCbCr{
		Y:              frame[:yi:yi],
		YStride:        width,
		Cb:             frame[yi:cbi:cbi],
		Cr:             frame[cbi:cri:cri],
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}, func() {}, nil
}

func decodeYUY2(frame []byte, width, height int) (image.Image, func(), error) {
	if err := validate(FormatYUY2, frame, width, height); err != nil {
		return nil, func() {}, err
	}

	yi := width * height
	ci := yi / 2
	fi := yi + 2*ci

	y := make([]byte, yi)
	cb := make([]byte, ci)
	cr := make([]byte, ci)

	fast := 0
	slow := 0
	for i := 0; i < fi; i += 4 {
		y[fast] = frame[i]
		cb[slow] = frame[i+1]
		y[fast+1] = frame[i+2]
		cr[slow] = frame[i+3]
		fast += 2
		slow++
	}

	return &image.YCbCr{
		Y:              y,
		YStride:        width,
		Cb:             cb,
		Cr:             cr,
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio422,
		Rect:           image.Rect(0, 0, width, height),
	}, func() {}, nil
}

func decodeUYVY(frame []byte, width, height int) (image.Image, func(), error) {
	if err := validate(FormatUYVY, frame, width, height); err != nil {
		return nil, func() {}, err
	}

	yi := width * height
	ci := yi / 2
	fi := yi + 2*ci

	y := make([]byte, yi)
	cb := make([]byte, ci)
	cr := make([]byte, ci)

	fast := 0
	slow := 0
	for i := 0; i < fi; i += 4 {
		cb[slow] = frame[i]
		y[fast] = frame[i+1]
		cr[slow] = frame[i+2]
		y[fast+1] = frame[i+3]
		fast += 2
		slow++
	}

	return &image.YCbCr{
		Y:              y,
		YStride:        width,
		Cb:             cb,
		Cr:             cr,
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio422,
		Rect:           image.Rect(0, 0, width, height),
	}, func() {}, nil
}
