package visualizer

import (
	"math"
)

// WaveformShaper downsamples the time-domain snapshot to the display point
// count and applies auto-gain, a deadzone and soft clipping. On silent ticks
// it zeroes the frame outright so no residual waveform lingers after voice
// stops.
type WaveformShaper struct {
	cfg Config

	smoothedPeak float64

	// Points is the shaped frame, PointCount long, mutated in place every
	// tick.
	Points []float64
}

// NewWaveformShaper creates a shaper emitting cfg.PointCount points.
func NewWaveformShaper(cfg Config) *WaveformShaper {
	return &WaveformShaper{
		cfg:          cfg,
		smoothedPeak: cfg.SmoothedPeakFloor,
		Points:       make([]float64, cfg.PointCount),
	}
}

// SmoothedPeak returns the decaying peak estimate used for auto-gain. It is
// bounded below by the configured floor so gain recomputation can never
// divide by a vanishing peak.
func (w *WaveformShaper) SmoothedPeak() float64 {
	return w.smoothedPeak
}

// Shape consumes one tick's time-domain samples and the gating decision and
// refreshes Points. Output magnitudes never exceed 1 regardless of input
// amplitude.
func (w *WaveformShaper) Shape(timeSamples []float64, silent bool) {
	w.downsample(timeSamples)

	peak := 0.0
	for _, p := range w.Points {
		if a := math.Abs(p); a > peak {
			peak = a
		}
	}

	// Decaying peak blend keeps gain from jumping frame to frame.
	w.smoothedPeak = w.smoothedPeak*w.cfg.PeakDecay + peak*(1-w.cfg.PeakDecay)
	if w.smoothedPeak < w.cfg.SmoothedPeakFloor {
		w.smoothedPeak = w.cfg.SmoothedPeakFloor
	}

	if silent {
		for i := range w.Points {
			w.Points[i] = 0
		}
		// Bleed the peak back toward its floor so the next utterance does
		// not start dim from a stale loud estimate.
		w.smoothedPeak = w.smoothedPeak * w.cfg.PeakDecay
		if w.smoothedPeak < w.cfg.SmoothedPeakFloor {
			w.smoothedPeak = w.cfg.SmoothedPeakFloor
		}
		return
	}

	gain := w.cfg.TargetPeak / w.smoothedPeak
	if gain > w.cfg.MaxGain {
		gain = w.cfg.MaxGain
	}

	for i, p := range w.Points {
		v := p * gain
		if math.Abs(v) < w.cfg.Deadzone {
			w.Points[i] = 0
			continue
		}
		// tanh soft clip: loud peaks compress smoothly instead of
		// flattening, and |output| stays below 1.
		w.Points[i] = math.Tanh(v * w.cfg.SoftClipShape)
	}
}

// Reset zeroes the frame and returns the peak estimate to its floor.
func (w *WaveformShaper) Reset() {
	for i := range w.Points {
		w.Points[i] = 0
	}
	w.smoothedPeak = w.cfg.SmoothedPeakFloor
}

// downsample picks PointCount uniformly spaced samples from the snapshot.
func (w *WaveformShaper) downsample(timeSamples []float64) {
	n := len(timeSamples)
	count := len(w.Points)
	if n == 0 {
		for i := range w.Points {
			w.Points[i] = 0
		}
		return
	}
	for i := range w.Points {
		idx := i * n / count
		s := timeSamples[idx]
		if math.IsNaN(s) {
			s = 0
		} else if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		w.Points[i] = s
	}
}
