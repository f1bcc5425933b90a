package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource feeds fixed byte snapshots into the sampler.
type scriptedSource struct {
	timeBytes []byte
	freqBytes []byte
	rate      float64
}

func (s *scriptedSource) ReadTimeDomain(dst []byte) {
	n := copy(dst, s.timeBytes)
	for i := n; i < len(dst); i++ {
		dst[i] = 128
	}
}

func (s *scriptedSource) ReadFrequencyMagnitudes(dst []byte) {
	n := copy(dst, s.freqBytes)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func (s *scriptedSource) SampleRate() float64 {
	if s.rate == 0 {
		return testSampleRate
	}
	return s.rate
}

func TestSamplerConversions(t *testing.T) {
	s := NewFrameSampler(8)
	src := &scriptedSource{
		timeBytes: []byte{128, 255, 0, 192},
		freqBytes: []byte{0, 255, 51},
	}

	s.Sample(src)

	require.Len(t, s.TimeSamples, 8)
	require.Len(t, s.FreqMagnitudes, 4)

	assert.InDelta(t, 0.0, s.TimeSamples[0], 1e-9)
	assert.InDelta(t, 127.0/128, s.TimeSamples[1], 1e-9)
	assert.InDelta(t, -1.0, s.TimeSamples[2], 1e-9)
	assert.InDelta(t, 0.5, s.TimeSamples[3], 1e-9)
	// Unwritten tail reads as the midpoint.
	assert.InDelta(t, 0.0, s.TimeSamples[7], 1e-9)

	assert.InDelta(t, 0.0, s.FreqMagnitudes[0], 1e-9)
	assert.InDelta(t, 1.0, s.FreqMagnitudes[1], 1e-9)
	assert.InDelta(t, 0.2, s.FreqMagnitudes[2], 1e-9)
}

func TestSamplerReusesBuffers(t *testing.T) {
	s := NewFrameSampler(8)
	src := &scriptedSource{timeBytes: []byte{200}}
	s.Sample(src)
	before := &s.TimeSamples[0]

	s.Sample(src)
	assert.Same(t, before, &s.TimeSamples[0])
}
