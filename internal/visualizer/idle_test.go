package visualizer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdleAnimatorBoundedAmplitude(t *testing.T) {
	cfg := DefaultConfig()
	a := NewIdleAnimator(cfg)

	now := time.Now()
	for i := 0; i < 120; i++ {
		a.Tick(now.Add(time.Duration(i) * 16 * time.Millisecond))
		for _, p := range a.Points {
			require.LessOrEqual(t, math.Abs(p), cfg.IdleAmplitude+1e-9)
		}
	}
}

func TestIdleAnimatorPhaseAdvances(t *testing.T) {
	cfg := DefaultConfig()
	a := NewIdleAnimator(cfg)

	now := time.Now()
	a.Tick(now)
	first := make([]float64, len(a.Points))
	copy(first, a.Points)

	a.Tick(now.Add(500 * time.Millisecond))
	moved := false
	for i := range a.Points {
		if math.Abs(a.Points[i]-first[i]) > 1e-6 {
			moved = true
			break
		}
	}
	assert.True(t, moved, "idle wave did not travel")
}

func TestIdleAnimatorFrame(t *testing.T) {
	cfg := DefaultConfig()
	a := NewIdleAnimator(cfg)

	frame := a.Frame(time.Now())
	require.Len(t, frame.Points, cfg.PointCount)
	assert.False(t, frame.Voice)
	for _, p := range frame.Points {
		assert.InDelta(t, 0.5, p.Y, cfg.IdleAmplitude/2+1e-9)
	}
	assert.Less(t, frame.Style.CoreAlpha, activeStyle(0).CoreAlpha)
}

func TestIdleAnimatorReset(t *testing.T) {
	a := NewIdleAnimator(DefaultConfig())
	a.Tick(time.Now())
	a.Reset()
	for _, p := range a.Points {
		assert.Zero(t, p)
	}
}
