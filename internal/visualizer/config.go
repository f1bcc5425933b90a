// Package visualizer implements the per-tick audio analysis and shaping
// pipeline behind the waveform line: acquiring filtered audio snapshots,
// deriving a speech-likelihood energy metric, adaptively tracking a noise
// floor, gating and shaping the waveform, and smoothing it in time and space
// before it is handed to the renderer.
package visualizer

import (
	"github.com/wavelight/voicewave/internal/domain"
)

// Config holds the tunable parameters of the pipeline. The rate constants
// and the speech-ratio clamp are empirically tuned; treat them as defaults
// to start from, not as load-bearing values.
type Config struct {
	// PointCount is the number of waveform points emitted per frame.
	PointCount int

	// HighpassHz and LowpassHz bound the analysis band of the filter chain.
	HighpassHz float64
	LowpassHz  float64

	// AnalysisWindowSize is the analyser window in samples (power of two).
	AnalysisWindowSize int

	// AnalyserSmoothing is the analyser's own spectral smoothing constant.
	// Kept low; smoothing is applied explicitly downstream.
	AnalyserSmoothing float64

	// Speech and total band edges in Hz for the activity estimator.
	SpeechBandLowHz  float64
	SpeechBandHighHz float64
	TotalBandLowHz   float64
	TotalBandHighHz  float64

	// SpeechRatioClamp caps how much speech-band dominance may amplify the
	// speech metric. The ratio never suppresses below the raw floor.
	SpeechRatioClamp float64

	// Noise floor dynamics. Small rises above the floor are learned slowly;
	// spikes far above it even more slowly (so a voice burst is not absorbed
	// as floor); falls recover at a moderate rate.
	NoiseFloorRiseRateSmall float64
	NoiseFloorRiseRateSpike float64
	NoiseFloorFallRate      float64

	// NoiseSpikeFactor is the multiple of the floor above which a rise is
	// treated as a spike.
	NoiseSpikeFactor float64

	// NoiseMargin is added on top of the floor before any exceedance counts
	// as voice energy.
	NoiseMargin float64

	// SilenceThreshold gates voiceEnergy into the silent/active decision.
	SilenceThreshold float64

	// TemporalResponsiveness is the blend rate of new frames into the
	// displayed buffer. Small values keep motion continuous.
	TemporalResponsiveness float64

	// SpatialKernel is the fixed symmetric smoothing kernel convolved across
	// the point sequence.
	SpatialKernel []float64

	// Auto-gain shaping.
	MaxGain           float64
	TargetPeak        float64
	SmoothedPeakFloor float64
	PeakDecay         float64

	// Deadzone snaps near-zero magnitudes to zero to suppress residual hiss.
	Deadzone float64

	// SoftClipShape steers the tanh soft-clip curve.
	SoftClipShape float64

	// Idle animation.
	IdleAmplitude float64
	IdleCycles    float64
	IdleSpeed     float64 // phase advance in radians per second

	// Cosmetic edge handling.
	EdgeTaperWidth int
	XPadding       float64
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.PointCount < 2 {
		return domain.ErrInvalidPointCount
	}
	return nil
}

// DefaultConfig returns the tuned default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		PointCount:         64,
		HighpassHz:         180,
		LowpassHz:          3800,
		AnalysisWindowSize: 2048,
		AnalyserSmoothing:  0.3,

		SpeechBandLowHz:  300,
		SpeechBandHighHz: 3400,
		TotalBandLowHz:   60,
		TotalBandHighHz:  8000,
		SpeechRatioClamp: 1.6,

		NoiseFloorRiseRateSmall: 0.02,
		NoiseFloorRiseRateSpike: 0.005,
		NoiseFloorFallRate:      0.05,
		NoiseSpikeFactor:        2.0,
		NoiseMargin:             0.015,
		SilenceThreshold:        0.05,

		TemporalResponsiveness: 0.35,
		SpatialKernel:          []float64{0.15, 0.20, 0.30, 0.20, 0.15},

		MaxGain:           6.0,
		TargetPeak:        0.8,
		SmoothedPeakFloor: 0.05,
		PeakDecay:         0.85,
		Deadzone:          0.02,
		SoftClipShape:     1.2,

		IdleAmplitude: 0.04,
		IdleCycles:    1.5,
		IdleSpeed:     0.9,

		EdgeTaperWidth: 6,
		XPadding:       0.04,
	}
}
