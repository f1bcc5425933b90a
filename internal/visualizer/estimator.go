package visualizer

import (
	"math"
)

// VoiceActivityEstimator distinguishes speech from ambient noise with a
// purely spectral heuristic: band-limited RMS energy weighted by how much of
// it is concentrated in the speech band, compared against an adaptively
// tracked noise floor.
//
// Broadband noise (fans, road noise, HVAC) spreads energy outside the speech
// band and so earns a low ratio weight; the floor's asymmetric rise/fall
// resists learning a constant hum as "voice" while still adapting to
// genuinely new ambient conditions.
type VoiceActivityEstimator struct {
	cfg        Config
	sampleRate float64

	noiseFloor float64

	// Last tick's outputs.
	SpeechMetric float64
	VoiceEnergy  float64
	Silent       bool
}

// NewVoiceActivityEstimator creates an estimator for the given capture
// sample rate.
func NewVoiceActivityEstimator(cfg Config, sampleRate float64) *VoiceActivityEstimator {
	return &VoiceActivityEstimator{
		cfg:        cfg,
		sampleRate: sampleRate,
		Silent:     true,
	}
}

// NoiseFloor returns the current adaptive floor. Always non-negative.
func (e *VoiceActivityEstimator) NoiseFloor() float64 {
	return e.noiseFloor
}

// Update consumes one tick's normalized frequency magnitudes and refreshes
// SpeechMetric, VoiceEnergy and Silent. It never returns an error; malformed
// inputs are clamped.
func (e *VoiceActivityEstimator) Update(freqMagnitudes []float64) {
	speechRms := e.bandRMS(freqMagnitudes, e.cfg.SpeechBandLowHz, e.cfg.SpeechBandHighHz)
	totalRms := e.bandRMS(freqMagnitudes, e.cfg.TotalBandLowHz, e.cfg.TotalBandHighHz)

	ratio := 0.0
	if totalRms > 0 {
		ratio = speechRms / totalRms
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > e.cfg.SpeechRatioClamp {
		ratio = e.cfg.SpeechRatioClamp
	}

	metric := speechRms * ratio
	if math.IsNaN(metric) || metric < 0 {
		metric = 0
	}
	e.SpeechMetric = metric

	e.updateNoiseFloor(metric)

	// Normalized exceedance over floor + margin.
	gate := e.noiseFloor + e.cfg.NoiseMargin
	energy := 0.0
	if metric > gate && gate > 0 {
		energy = (metric - gate) / gate
		if energy > 1 {
			energy = 1
		}
	}
	e.VoiceEnergy = energy
	e.Silent = energy < e.cfg.SilenceThreshold
}

// updateNoiseFloor applies the asymmetric exponential floor update: small
// rises are learned slowly, spikes even more slowly, falls at a moderate
// rate. The floor never goes negative.
func (e *VoiceActivityEstimator) updateNoiseFloor(metric float64) {
	var rate float64
	switch {
	case metric > e.noiseFloor*e.cfg.NoiseSpikeFactor+e.cfg.NoiseMargin:
		rate = e.cfg.NoiseFloorRiseRateSpike
	case metric > e.noiseFloor:
		rate = e.cfg.NoiseFloorRiseRateSmall
	default:
		rate = e.cfg.NoiseFloorFallRate
	}

	e.noiseFloor += (metric - e.noiseFloor) * rate
	if e.noiseFloor < 0 {
		e.noiseFloor = 0
	}
}

// Reset clears the adaptive state, for session teardown.
func (e *VoiceActivityEstimator) Reset() {
	e.noiseFloor = 0
	e.SpeechMetric = 0
	e.VoiceEnergy = 0
	e.Silent = true
}

// bandRMS computes sqrt(mean(magnitude^2)) over the bins covering
// [lowHz, highHz]. Bin k covers frequency k * sampleRate / windowSize.
func (e *VoiceActivityEstimator) bandRMS(magnitudes []float64, lowHz, highHz float64) float64 {
	windowSize := len(magnitudes) * 2
	if windowSize == 0 {
		return 0
	}
	binHz := e.sampleRate / float64(windowSize)

	lo := int(math.Ceil(lowHz / binHz))
	hi := int(math.Floor(highHz / binHz))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(magnitudes) {
		hi = len(magnitudes) - 1
	}
	if hi < lo {
		return 0
	}

	var sum float64
	for k := lo; k <= hi; k++ {
		m := magnitudes[k]
		if math.IsNaN(m) {
			m = 0
		}
		sum += m * m
	}
	return math.Sqrt(sum / float64(hi-lo+1))
}
