package visualizer

import (
	"math"

	"github.com/wavelight/voicewave/internal/domain"
)

// frameAssembler turns a smoothed point sequence into a renderer-ready
// domain.RenderFrame: edge-tapered, padded in X and mapped into the unit
// square with y=0.5 as the baseline.
type frameAssembler struct {
	cfg   Config
	taper []float64
	frame domain.RenderFrame
}

func newFrameAssembler(cfg Config) *frameAssembler {
	return &frameAssembler{
		cfg:   cfg,
		taper: edgeTaper(cfg.PointCount, cfg.EdgeTaperWidth),
		frame: domain.RenderFrame{
			Points: make([]domain.Point, cfg.PointCount),
		},
	}
}

// assemble maps values in [-1, 1] into the frame. The returned frame's Points
// slice is reused across ticks; the renderer must not retain it.
func (f *frameAssembler) assemble(values []float64, style domain.StrokeStyle, voice bool) domain.RenderFrame {
	n := len(f.frame.Points)
	pad := f.cfg.XPadding
	span := 1 - 2*pad
	for i := 0; i < n; i++ {
		v := values[i] * f.taper[i]
		x := pad
		if n > 1 {
			x = pad + span*float64(i)/float64(n-1)
		}
		f.frame.Points[i] = domain.Point{X: x, Y: 0.5 - 0.5*v}
	}
	f.frame.Style = style
	f.frame.Voice = voice
	return f.frame
}

// edgeTaper builds a per-point multiplier that raised-cosine fades the first
// and last width points to zero at the extremes, pinning the line's endpoints
// to the baseline.
func edgeTaper(pointCount, width int) []float64 {
	taper := make([]float64, pointCount)
	for i := range taper {
		taper[i] = 1
	}
	if width <= 0 || pointCount < 2*width {
		return taper
	}
	for i := 0; i < width; i++ {
		t := float64(i) / float64(width)
		w := 0.5 - 0.5*math.Cos(t*math.Pi)
		taper[i] = w
		taper[pointCount-1-i] = w
	}
	return taper
}

// activeStyle is the stroke used while voice is animating the line.
func activeStyle(voiceEnergy float64) domain.StrokeStyle {
	return domain.StrokeStyle{
		CoreWidth:    2.0,
		CoreAlpha:    1.0,
		GlowWidth:    6.0,
		GlowAlpha:    0.20 + 0.25*voiceEnergy,
		CenterBright: 0.35,
	}
}

// idleStyle is the dimmer stroke used for the resting breathing line.
func idleStyle() domain.StrokeStyle {
	return domain.StrokeStyle{
		CoreWidth:    2.0,
		CoreAlpha:    0.55,
		GlowWidth:    4.0,
		GlowAlpha:    0.10,
		CenterBright: 0.20,
	}
}
