package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWindow = 2048
	testRate   = 48000.0
)

func pushSine(a *Analyser, freqHz, amplitude float64, n int) {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/testRate)
	}
	a.Push(samples)
}

func TestAnalyser_FreshReadsSilence(t *testing.T) {
	a := NewAnalyser(testWindow, testRate, 0.3)

	td := make([]byte, testWindow)
	a.ReadTimeDomain(td)
	for _, b := range td {
		require.EqualValues(t, 128, b)
	}

	fd := make([]byte, testWindow/2)
	a.ReadFrequencyMagnitudes(fd)
	for _, b := range fd {
		require.Zero(t, b)
	}
}

func TestAnalyser_TimeDomainSnapshot(t *testing.T) {
	a := NewAnalyser(testWindow, testRate, 0.3)
	pushSine(a, 1000, 0.5, testWindow)

	td := make([]byte, testWindow)
	a.ReadTimeDomain(td)

	var lo, hi byte = 255, 0
	for _, b := range td {
		if b < lo {
			lo = b
		}
		if b > hi {
			hi = b
		}
	}
	// A 0.5 amplitude sine swings roughly 64 counts around the midpoint.
	assert.Less(t, lo, byte(80))
	assert.Greater(t, hi, byte(176))
}

func TestAnalyser_FrequencySnapshotPeaksAtTone(t *testing.T) {
	a := NewAnalyser(testWindow, testRate, 0) // no smoothing for a crisp peak
	pushSine(a, 1000, 0.5, testWindow)

	fd := make([]byte, testWindow/2)
	a.ReadFrequencyMagnitudes(fd)

	// 1 kHz lands near bin 1000 / (48000/2048) ≈ 42.7.
	toneBin := int(math.Floor(1000 / (testRate / testWindow)))
	var nearTone byte
	for k := toneBin - 2; k <= toneBin+2; k++ {
		if fd[k] > nearTone {
			nearTone = fd[k]
		}
	}
	assert.Greater(t, nearTone, byte(200))
	assert.Less(t, fd[400], nearTone, "distant bin should be far below the tone peak")
}

func TestAnalyser_SmoothingDelaysDecay(t *testing.T) {
	a := NewAnalyser(testWindow, testRate, 0.8)
	pushSine(a, 1000, 0.5, testWindow)

	fd := make([]byte, testWindow/2)
	a.ReadFrequencyMagnitudes(fd)
	toneBin := int(math.Floor(1000 / (testRate / testWindow)))
	first := fd[toneBin]
	require.NotZero(t, first)

	// Overwrite the window with silence; the smoothed magnitude should
	// decay gradually, not vanish in one read.
	a.Push(make([]float64, testWindow))
	a.ReadFrequencyMagnitudes(fd)
	assert.NotZero(t, fd[toneBin])
	assert.LessOrEqual(t, fd[toneBin], first)
}

func TestAnalyser_ShortDestinationZeroFills(t *testing.T) {
	a := NewAnalyser(testWindow, testRate, 0.3)

	long := make([]byte, testWindow*2)
	a.ReadTimeDomain(long)
	for _, b := range long[testWindow:] {
		assert.EqualValues(t, 128, b)
	}
}

func TestAnalyser_CloseReadsSilence(t *testing.T) {
	a := NewAnalyser(testWindow, testRate, 0.3)
	pushSine(a, 1000, 0.5, testWindow)

	a.Close()
	a.Close() // idempotent

	fd := make([]byte, testWindow/2)
	a.ReadFrequencyMagnitudes(fd)
	for _, b := range fd {
		require.Zero(t, b)
	}

	// Pushes after close are dropped.
	pushSine(a, 1000, 0.5, testWindow)
	td := make([]byte, testWindow)
	a.ReadTimeDomain(td)
	for _, b := range td {
		require.EqualValues(t, 128, b)
	}
}
