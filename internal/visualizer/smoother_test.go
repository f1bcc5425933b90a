package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemporalSmootherBlends(t *testing.T) {
	s := NewTemporalSmoother(0.35, 4)
	next := []float64{1, 1, 1, 1}

	s.Smooth(next, false)
	for _, p := range s.Points {
		require.InDelta(t, 0.35, p, 1e-9)
	}

	s.Smooth(next, false)
	for _, p := range s.Points {
		require.InDelta(t, 0.35+0.65*0.35, p, 1e-9)
	}
}

func TestTemporalSmootherSilenceSnapsToZero(t *testing.T) {
	s := NewTemporalSmoother(0.35, 4)
	s.Smooth([]float64{1, 1, 1, 1}, false)
	require.NotZero(t, s.Points[0])

	// One silent tick fully clears the buffer, no decay tail.
	s.Smooth([]float64{1, 1, 1, 1}, true)
	for _, p := range s.Points {
		assert.Zero(t, p)
	}
}

func TestTemporalSmootherConvergesToInput(t *testing.T) {
	s := NewTemporalSmoother(0.35, 2)
	next := []float64{0.8, -0.4}
	for i := 0; i < 100; i++ {
		s.Smooth(next, false)
	}
	assert.InDelta(t, 0.8, s.Points[0], 1e-6)
	assert.InDelta(t, -0.4, s.Points[1], 1e-6)
}

func TestSpatialSmootherConstantPassthrough(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSpatialSmoother(cfg.SpatialKernel, 8)
	src := []float64{0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7}

	s.Smooth(src)
	// Boundary renormalization keeps a constant line constant.
	for _, p := range s.Points {
		assert.InDelta(t, 0.7, p, 1e-9)
	}
}

func TestSpatialSmootherFlattensSpike(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSpatialSmoother(cfg.SpatialKernel, 9)
	src := make([]float64, 9)
	src[4] = 1.0

	s.Smooth(src)
	assert.InDelta(t, 0.30, s.Points[4], 1e-9)
	assert.InDelta(t, 0.20, s.Points[3], 1e-9)
	assert.InDelta(t, 0.20, s.Points[5], 1e-9)
	assert.InDelta(t, 0.15, s.Points[2], 1e-9)
	assert.InDelta(t, 0.15, s.Points[6], 1e-9)
	assert.Zero(t, s.Points[1])
}

func TestSpatialSmootherPreservesZero(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSpatialSmoother(cfg.SpatialKernel, cfg.PointCount)
	s.Smooth(make([]float64, cfg.PointCount))
	for _, p := range s.Points {
		assert.Zero(t, p)
	}
}
