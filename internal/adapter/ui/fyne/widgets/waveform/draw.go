package waveform

import (
	"image"
	"image/color"
	"math"
)

// DrawingUtils provides common drawing operations for the waveform raster.
type DrawingUtils struct{}

// FillBackground fills the image with a solid color.
func (DrawingUtils) FillBackground(img *image.RGBA, col color.Color) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, col)
		}
	}
}

// BlendPixel composites col over the existing pixel (source-over), so
// translucent glow passes accumulate instead of overwriting.
func (DrawingUtils) BlendPixel(img *image.RGBA, x, y int, col color.RGBA) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}

	dst := img.RGBAAt(x, y)
	a := float64(col.A) / 255
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*a + float64(dst.R)*(1-a)),
		G: uint8(float64(col.G)*a + float64(dst.G)*(1-a)),
		B: uint8(float64(col.B)*a + float64(dst.B)*(1-a)),
		A: 255,
	})
}

// DrawThickLine draws an alpha-blended line with the specified thickness.
func (d DrawingUtils) DrawThickLine(img *image.RGBA, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Sqrt(dx*dx + dy*dy)

	if length == 0 {
		d.BlendPixel(img, int(x1), int(y1), col)
		return
	}

	// Perpendicular unit vector for thickness
	perpX := -dy / length
	perpY := dx / length

	steps := int(length) + 1
	half := int(thickness / 2)

	for t := -half; t <= half; t++ {
		offsetX := float64(t) * perpX
		offsetY := float64(t) * perpY

		for i := 0; i <= steps; i++ {
			progress := float64(i) / float64(steps)
			px := int(x1 + dx*progress + offsetX)
			py := int(y1 + dy*progress + offsetY)
			d.BlendPixel(img, px, py, col)
		}
	}
}

// Lighten shifts col toward white by amount (0.0 to 1.0), preserving alpha.
func (DrawingUtils) Lighten(col color.RGBA, amount float64) color.RGBA {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	return color.RGBA{
		R: uint8(float64(col.R) + (255-float64(col.R))*amount),
		G: uint8(float64(col.G) + (255-float64(col.G))*amount),
		B: uint8(float64(col.B) + (255-float64(col.B))*amount),
		A: col.A,
	}
}

// WithAlpha returns col with its alpha scaled to alpha (0.0 to 1.0).
func (DrawingUtils) WithAlpha(col color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	col.A = uint8(alpha * 255)
	return col
}
