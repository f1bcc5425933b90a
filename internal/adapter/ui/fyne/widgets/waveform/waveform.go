// Package waveform provides the oscilloscope-line widget for the VoiceWave
// application.
package waveform

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/wavelight/voicewave/internal/domain"
)

var (
	backgroundColor = color.RGBA{R: 10, G: 12, B: 18, A: 255}
	lineColor       = color.RGBA{R: 64, G: 200, B: 255, A: 255}
)

// Waveform is a widget that displays the waveform line over a dark
// background. It renders two passes per frame: a wide translucent glow and a
// narrow core, with the core brightened toward the horizontal center.
//
// Thread-safety: SetFrame may be called from any goroutine; rendering takes a
// snapshot under the lock.
type Waveform struct {
	widget.BaseWidget

	Raster *canvas.Raster

	mu     sync.RWMutex
	points []domain.Point
	style  domain.StrokeStyle

	draw DrawingUtils
}

// New creates a new waveform widget showing a flat baseline until the first
// frame arrives.
func New() *Waveform {
	v := &Waveform{}
	v.Raster = canvas.NewRaster(v.render)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *Waveform) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.Raster)
}

// MinSize returns the minimum size of the widget.
func (v *Waveform) MinSize() fyne.Size {
	return fyne.NewSize(240, 80)
}

// SetFrame updates the widget with a new frame. The frame's Points slice is
// copied, so callers may reuse it.
func (v *Waveform) SetFrame(frame domain.RenderFrame) {
	v.mu.Lock()
	if cap(v.points) < len(frame.Points) {
		v.points = make([]domain.Point, len(frame.Points))
	}
	v.points = v.points[:len(frame.Points)]
	copy(v.points, frame.Points)
	v.style = frame.Style
	v.mu.Unlock()

	v.Raster.Refresh()
}

// Reset clears the widget back to the flat baseline.
func (v *Waveform) Reset() {
	v.mu.Lock()
	v.points = v.points[:0]
	v.style = domain.StrokeStyle{}
	v.mu.Unlock()

	v.Raster.Refresh()
}

// render draws the current frame.
func (v *Waveform) render(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	v.draw.FillBackground(img, backgroundColor)

	v.mu.RLock()
	points := make([]domain.Point, len(v.points))
	copy(points, v.points)
	style := v.style
	v.mu.RUnlock()

	if w == 0 || h == 0 {
		return img
	}

	if len(points) < 2 {
		v.drawBaseline(img, w, h)
		return img
	}

	px := make([]float64, len(points))
	py := make([]float64, len(points))
	for i, p := range points {
		px[i] = p.X * float64(w-1)
		py[i] = p.Y * float64(h-1)
	}

	// Glow pass first so the core draws over it.
	glow := v.draw.WithAlpha(lineColor, style.GlowAlpha)
	for i := 0; i < len(points)-1; i++ {
		v.draw.DrawThickLine(img, px[i], py[i], px[i+1], py[i+1], style.GlowWidth, glow)
	}

	// Core pass, brightened toward the horizontal center.
	n := float64(len(points) - 1)
	for i := 0; i < len(points)-1; i++ {
		t := float64(i) / n
		centered := 1 - abs(2*t-1)
		col := v.draw.Lighten(lineColor, style.CenterBright*centered)
		col = v.draw.WithAlpha(col, style.CoreAlpha)
		v.draw.DrawThickLine(img, px[i], py[i], px[i+1], py[i+1], style.CoreWidth, col)
	}

	return img
}

// drawBaseline draws the resting flat line used before any frame arrives.
func (v *Waveform) drawBaseline(img *image.RGBA, w, h int) {
	col := v.draw.WithAlpha(lineColor, 0.4)
	y := float64(h-1) / 2
	v.draw.DrawThickLine(img, 0, y, float64(w-1), y, 1, col)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
