package video

import (
	"image"
	"image/color"
)

// chromaPlanes presents a Cb and a Cr plane as one image, Cb in the red
// channel and Cr in the green one, so both planes are resampled in one pass.
type chromaPlanes struct {
	cb *image.Gray
	cr *image.Gray
}

func (p *chromaPlanes) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *chromaPlanes) Bounds() image.Rectangle {
	return p.cb.Rect
}

func (p *chromaPlanes) At(x, y int) color.Color {
	return color.RGBA{p.cb.GrayAt(x, y).Y, p.cr.GrayAt(x, y).Y, 0, 0xFF}
}

func (p *chromaPlanes) Set(x, y int, c color.Color) {
	r, g, _, _ := c.RGBA()
	p.cb.SetGray(x, y, color.Gray{uint8(r >> 8)})
	p.cr.SetGray(x, y, color.Gray{uint8(g >> 8)})
}
