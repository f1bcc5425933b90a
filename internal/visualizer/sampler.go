package visualizer

// FrameSampler converts the analyser's per-tick byte snapshots into the
// numeric ranges the rest of the pipeline works in. It owns its scratch
// buffers, so sampling is allocation-free once constructed.
type FrameSampler struct {
	timeBytes []byte
	freqBytes []byte

	// Snapshot outputs, valid until the next Sample call.
	TimeSamples    []float64 // [-1, 1], analysisWindowSize long
	FreqMagnitudes []float64 // [0, 1], analysisWindowSize/2 long
}

// NewFrameSampler creates a sampler for the given analysis window size.
func NewFrameSampler(windowSize int) *FrameSampler {
	return &FrameSampler{
		timeBytes:      make([]byte, windowSize),
		freqBytes:      make([]byte, windowSize/2),
		TimeSamples:    make([]float64, windowSize),
		FreqMagnitudes: make([]float64, windowSize/2),
	}
}

// snapshotSource is the non-blocking read surface the sampler pulls from.
// ports.FrameSource satisfies it; tests can substitute scripted sources.
type snapshotSource interface {
	ReadTimeDomain(dst []byte)
	ReadFrequencyMagnitudes(dst []byte)
}

// Sample pulls one tick's snapshots from the source. Time-domain bytes are
// centered on the midpoint (128) and scaled by the half-range into [-1, 1];
// frequency bytes are scaled into [0, 1].
func (s *FrameSampler) Sample(src snapshotSource) {
	src.ReadTimeDomain(s.timeBytes)
	src.ReadFrequencyMagnitudes(s.freqBytes)

	for i, b := range s.timeBytes {
		s.TimeSamples[i] = (float64(b) - 128) / 128
	}
	for i, b := range s.freqBytes {
		s.FreqMagnitudes[i] = float64(b) / 255
	}
}
