package visualizer

import (
	"math"
	"time"

	"github.com/wavelight/voicewave/internal/domain"
)

// IdleAnimator produces the resting waveform: a low-amplitude travelling sine
// that reads as "listening" without mimicking speech. Phase advances from the
// caller-supplied monotonic timestamp, so a stalled ticker resumes smoothly
// instead of jumping.
type IdleAnimator struct {
	cfg   Config
	phase float64
	last  time.Time
	asm   *frameAssembler

	// Points is the idle frame, mutated in place every tick.
	Points []float64
}

// NewIdleAnimator creates an animator emitting cfg.PointCount points.
func NewIdleAnimator(cfg Config) *IdleAnimator {
	return &IdleAnimator{
		cfg:    cfg,
		asm:    newFrameAssembler(cfg),
		Points: make([]float64, cfg.PointCount),
	}
}

// Tick advances the animation to now and refreshes Points.
func (a *IdleAnimator) Tick(now time.Time) {
	if !a.last.IsZero() {
		a.phase += a.cfg.IdleSpeed * now.Sub(a.last).Seconds()
		if a.phase > 2*math.Pi {
			a.phase -= 2 * math.Pi
		}
	}
	a.last = now

	n := len(a.Points)
	for i := range a.Points {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		a.Points[i] = a.cfg.IdleAmplitude * math.Sin(2*math.Pi*a.cfg.IdleCycles*t+a.phase)
	}
}

// Frame advances the animation to now and returns the renderer-ready idle
// frame. The frame's Points slice is reused across ticks.
func (a *IdleAnimator) Frame(now time.Time) domain.RenderFrame {
	a.Tick(now)
	return a.asm.assemble(a.Points, idleStyle(), false)
}

// Reset zeroes the frame and restarts the phase clock.
func (a *IdleAnimator) Reset() {
	a.phase = 0
	a.last = time.Time{}
	for i := range a.Points {
		a.Points[i] = 0
	}
}
