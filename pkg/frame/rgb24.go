package frame

import (
	"image"
	"image/color"
)

// RGB24Img is an in-memory image of packed 8-bit R, G, B samples.
type RGB24Img struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Rect   image.Rectangle
	Stride int
}

// NewRGB24 returns a new RGB24Img with the given bounds.
func NewRGB24(r image.Rectangle) *RGB24Img {
	return &RGB24Img{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Rect:   r,
		Stride: 3 * r.Dx(),
	}
}

func decodeRGB24(frame []byte, width, height int) (image.Image, func(), error) {
	if err := validate(FormatRGB24, frame, width, height); err != nil {
		return nil, func() {}, err
	}

	return &RGB24Img{
		Pix:    frame,
		Rect:   image.Rect(0, 0, width, height),
		Stride: width * 3,
	}, func() {}, nil
}

func (p *RGB24Img) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *RGB24Img) Bounds() image.Rectangle {
	return p.Rect
}

func (p *RGB24Img) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB24Img) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

func (p *RGB24Img) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small capacity improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[0], s[1], s[2], 0xFF}
}

// Set implements draw.Image. Alpha is dropped.
func (p *RGB24Img) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	c1 := color.RGBAModel.Convert(c).(color.RGBA)
	s := p.Pix[i : i+3 : i+3]
	s[0] = c1.R
	s[1] = c1.G
	s[2] = c1.B
}

// SubImage returns an image representing the portion of p visible through r.
// The returned value shares pixels with p.
func (p *RGB24Img) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &RGB24Img{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &RGB24Img{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Opaque reports that every pixel is fully opaque, which lets encoders such as
// image/png skip the alpha channel.
func (p *RGB24Img) Opaque() bool {
	return true
}
