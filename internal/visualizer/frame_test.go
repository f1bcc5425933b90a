package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeTaperEndpointsPinned(t *testing.T) {
	taper := edgeTaper(64, 6)
	require.Len(t, taper, 64)

	assert.Zero(t, taper[0])
	assert.Zero(t, taper[63])
	for i := 6; i < 58; i++ {
		assert.Equal(t, 1.0, taper[i], "interior point %d", i)
	}
	// Monotonic ramp in.
	for i := 1; i < 6; i++ {
		assert.Greater(t, taper[i], taper[i-1])
	}
}

func TestEdgeTaperDegenerateWidths(t *testing.T) {
	for _, taper := range [][]float64{
		edgeTaper(64, 0),
		edgeTaper(8, 6), // width would overlap; taper disabled
	} {
		for _, w := range taper {
			assert.Equal(t, 1.0, w)
		}
	}
}

func TestAssembleMapsIntoUnitSquare(t *testing.T) {
	cfg := DefaultConfig()
	a := newFrameAssembler(cfg)

	values := make([]float64, cfg.PointCount)
	for i := range values {
		values[i] = 1.0
	}
	frame := a.assemble(values, activeStyle(0.5), true)

	require.Len(t, frame.Points, cfg.PointCount)
	assert.True(t, frame.Voice)
	assert.InDelta(t, cfg.XPadding, frame.Points[0].X, 1e-9)
	assert.InDelta(t, 1-cfg.XPadding, frame.Points[cfg.PointCount-1].X, 1e-9)

	for i, p := range frame.Points {
		assert.GreaterOrEqual(t, p.Y, 0.0, "point %d", i)
		assert.LessOrEqual(t, p.Y, 1.0, "point %d", i)
		if i > 0 {
			assert.Greater(t, p.X, frame.Points[i-1].X)
		}
	}

	// Tapered endpoints sit exactly on the baseline.
	assert.InDelta(t, 0.5, frame.Points[0].Y, 1e-9)
	assert.InDelta(t, 0.5, frame.Points[cfg.PointCount-1].Y, 1e-9)
}

func TestAssembleZeroValuesFlatBaseline(t *testing.T) {
	cfg := DefaultConfig()
	a := newFrameAssembler(cfg)
	frame := a.assemble(make([]float64, cfg.PointCount), activeStyle(0), false)

	assert.False(t, frame.Voice)
	for _, p := range frame.Points {
		assert.InDelta(t, 0.5, p.Y, 1e-9)
	}
}

func TestActiveStyleGlowTracksEnergy(t *testing.T) {
	low := activeStyle(0)
	high := activeStyle(1)
	assert.Greater(t, high.GlowAlpha, low.GlowAlpha)
	assert.Equal(t, low.CoreWidth, high.CoreWidth)
}
