package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sineRMS feeds a sine of the given frequency through the chain and returns
// the output RMS over the second half of the block (past the transient).
func sineRMS(t *testing.T, chain *FilterChain, freqHz, sampleRate float64) float64 {
	t.Helper()

	n := int(sampleRate) // one second
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRate)
	}
	chain.Process(samples)

	var sum float64
	half := samples[n/2:]
	for _, s := range half {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(half)))
}

func TestFilterChain_PassesSpeechBand(t *testing.T) {
	chain := NewFilterChain(180, 3800, 48000)

	rms := sineRMS(t, chain, 1000, 48000)

	// 1 kHz sits in the middle of the passband; 0.5 amplitude sine has
	// RMS ~0.354 and should come through mostly intact.
	assert.Greater(t, rms, 0.25)
}

func TestFilterChain_AttenuatesRumble(t *testing.T) {
	chain := NewFilterChain(180, 3800, 48000)

	rms := sineRMS(t, chain, 40, 48000)

	// 40 Hz is well below the 180 Hz high-pass cutoff.
	assert.Less(t, rms, 0.1)
}

func TestFilterChain_AttenuatesHiss(t *testing.T) {
	chain := NewFilterChain(180, 3800, 48000)

	rms := sineRMS(t, chain, 15000, 48000)

	// 15 kHz is well above the 3.8 kHz low-pass cutoff.
	assert.Less(t, rms, 0.1)
}

func TestFilterChain_StableOnImpulse(t *testing.T) {
	chain := NewFilterChain(180, 3800, 48000)

	samples := make([]float64, 4096)
	samples[0] = 1
	chain.Process(samples)

	for i, s := range samples {
		require.False(t, math.IsNaN(s) || math.IsInf(s, 0), "sample %d is not finite", i)
	}
	// The impulse response must decay.
	assert.Less(t, math.Abs(samples[len(samples)-1]), 1e-6)
}

func TestFilterChain_Reset(t *testing.T) {
	chain := NewFilterChain(180, 3800, 48000)

	block := make([]float64, 64)
	for i := range block {
		block[i] = 1
	}
	chain.Process(block)
	chain.Reset()

	// After a reset, a zero block must come out exactly zero.
	zeros := make([]float64, 64)
	chain.Process(zeros)
	for _, s := range zeros {
		assert.Zero(t, s)
	}
}
