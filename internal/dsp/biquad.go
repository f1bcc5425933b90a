// Package dsp provides the signal-processing building blocks for the
// visualizer: the speech-band filter chain and the frequency analyser.
package dsp

import (
	"math"
)

// butterworthQ is the Q factor for a maximally flat passband.
const butterworthQ = 0.707

// Biquad is a single second-order IIR filter section in transposed direct
// form II. The zero value is a pass-through; use NewHighPass or NewLowPass.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

// NewHighPass returns a high-pass biquad with the given cutoff (Hz) at the
// given sample rate, using a Butterworth response (RBJ audio EQ cookbook).
func NewHighPass(cutoffHz, sampleRate float64) *Biquad {
	w0 := 2 * math.Pi * cutoffHz / sampleRate
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * butterworthQ)

	a0 := 1 + alpha
	f := &Biquad{
		b0: (1 + cosw0) / 2 / a0,
		b1: -(1 + cosw0) / a0,
		b2: (1 + cosw0) / 2 / a0,
		a1: -2 * cosw0 / a0,
		a2: (1 - alpha) / a0,
	}
	return f
}

// NewLowPass returns a low-pass biquad with the given cutoff (Hz) at the
// given sample rate, using a Butterworth response (RBJ audio EQ cookbook).
func NewLowPass(cutoffHz, sampleRate float64) *Biquad {
	w0 := 2 * math.Pi * cutoffHz / sampleRate
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * butterworthQ)

	a0 := 1 + alpha
	f := &Biquad{
		b0: (1 - cosw0) / 2 / a0,
		b1: (1 - cosw0) / a0,
		b2: (1 - cosw0) / 2 / a0,
		a1: -2 * cosw0 / a0,
		a2: (1 - alpha) / a0,
	}
	return f
}

// ProcessSample filters a single sample.
func (f *Biquad) ProcessSample(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// Reset clears the filter state.
func (f *Biquad) Reset() {
	f.z1 = 0
	f.z2 = 0
}

// FilterChain band-limits the raw capture signal before analysis: one
// high-pass stage followed by one low-pass stage in series, so both the
// time-domain and the frequency-domain analyses observe only
// speech-band-relevant energy. Construction never fails.
type FilterChain struct {
	highpass *Biquad
	lowpass  *Biquad
}

// NewFilterChain creates the source → high-pass → low-pass chain.
func NewFilterChain(highpassHz, lowpassHz, sampleRate float64) *FilterChain {
	return &FilterChain{
		highpass: NewHighPass(highpassHz, sampleRate),
		lowpass:  NewLowPass(lowpassHz, sampleRate),
	}
}

// Process filters the block in place and returns it for chaining.
func (c *FilterChain) Process(samples []float64) []float64 {
	for i, s := range samples {
		samples[i] = c.lowpass.ProcessSample(c.highpass.ProcessSample(s))
	}
	return samples
}

// Reset clears the state of both stages.
func (c *FilterChain) Reset() {
	c.highpass.Reset()
	c.lowpass.Reset()
}
