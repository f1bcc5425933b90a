package dsp

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyser byte-snapshot calibration. Frequency magnitudes are mapped from
// decibels into the 0-255 byte range between minDecibels and maxDecibels;
// time-domain samples are centered at 128.
const (
	minDecibels = -100.0
	maxDecibels = -30.0

	timeDomainMid = 128
)

// Analyser is the frequency-analysis component attached to a capture stream.
// The capture goroutine pushes filtered sample blocks in; the tick loop takes
// non-blocking byte snapshots out.
//
// Snapshots mirror the conventional analyser contract: a time-domain byte
// sequence of windowSize samples centered at 128, and windowSize/2
// frequency-magnitude bytes on a dB scale. The analyser's own spectral
// smoothing constant is kept low because smoothing is performed explicitly
// downstream by the visualizer pipeline.
type Analyser struct {
	windowSize int
	sampleRate float64
	smoothing  float64

	mu   sync.Mutex
	ring []float64 // windowSize most recent samples
	pos  int

	fft      *fourier.FFT
	windowed []float64    // Hann-windowed copy for the FFT
	coeffs   []complex128
	hann     []float64
	smoothed []float64    // smoothed linear magnitudes, windowSize/2

	closed bool
}

// NewAnalyser creates an analyser with the given window size (a power of
// two, conventionally 2048) and capture sample rate.
func NewAnalyser(windowSize int, sampleRate float64, smoothing float64) *Analyser {
	a := &Analyser{
		windowSize: windowSize,
		sampleRate: sampleRate,
		smoothing:  smoothing,
		ring:       make([]float64, windowSize),
		fft:        fourier.NewFFT(windowSize),
		windowed:   make([]float64, windowSize),
		coeffs:     make([]complex128, windowSize/2+1),
		hann:       make([]float64, windowSize),
		smoothed:   make([]float64, windowSize/2),
	}
	for i := range a.hann {
		a.hann[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(windowSize-1)))
	}
	return a
}

// BinCount returns the number of frequency bins (windowSize / 2).
func (a *Analyser) BinCount() int {
	return a.windowSize / 2
}

// WindowSize returns the analysis window size in samples.
func (a *Analyser) WindowSize() int {
	return a.windowSize
}

// SampleRate returns the capture sample rate in Hz.
func (a *Analyser) SampleRate() float64 {
	return a.sampleRate
}

// Push appends a block of filtered samples. Called from the capture
// goroutine; cheap enough to run inside the stream callback.
func (a *Analyser) Push(samples []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	for _, s := range samples {
		a.ring[a.pos] = s
		a.pos = (a.pos + 1) % a.windowSize
	}
}

// ReadTimeDomain fills dst with the latest time-domain snapshot as bytes
// centered at 128. Samples are clamped to [-1, 1]; a fresh analyser reads as
// all-128 (silence). Never blocks on audio delivery.
func (a *Analyser) ReadTimeDomain(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(dst)
	if n > a.windowSize {
		n = a.windowSize
	}
	// Oldest sample first, matching the ring order.
	for i := 0; i < n; i++ {
		s := a.ring[(a.pos+i)%a.windowSize]
		dst[i] = sampleToByte(s)
	}
	for i := n; i < len(dst); i++ {
		dst[i] = timeDomainMid
	}
}

// ReadFrequencyMagnitudes fills dst with the latest frequency-magnitude
// snapshot: Hann window, FFT, per-bin exponential smoothing of linear
// magnitudes, then dB mapping into 0-255.
func (a *Analyser) ReadFrequencyMagnitudes(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		for i := range dst {
			dst[i] = 0
		}
		return
	}

	for i := 0; i < a.windowSize; i++ {
		a.windowed[i] = a.ring[(a.pos+i)%a.windowSize] * a.hann[i]
	}
	a.fft.Coefficients(a.coeffs, a.windowed)

	bins := a.windowSize / 2
	scale := 1.0 / float64(a.windowSize)
	for k := 0; k < bins; k++ {
		mag := cmplxAbs(a.coeffs[k]) * scale
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			mag = 0
		}
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
	}

	n := len(dst)
	if n > bins {
		n = bins
	}
	for k := 0; k < n; k++ {
		dst[k] = magnitudeToByte(a.smoothed[k])
	}
	for k := n; k < len(dst); k++ {
		dst[k] = 0
	}
}

// Close releases the analyser. Subsequent reads return silence; Close is
// idempotent.
func (a *Analyser) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	for i := range a.ring {
		a.ring[i] = 0
	}
	for i := range a.smoothed {
		a.smoothed[i] = 0
	}
}

// sampleToByte maps a [-1, 1] sample to the byte range centered at 128.
func sampleToByte(s float64) byte {
	if math.IsNaN(s) {
		s = 0
	}
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	v := math.Round(float64(timeDomainMid) + s*float64(timeDomainMid))
	if v > 255 {
		v = 255
	} else if v < 0 {
		v = 0
	}
	return byte(v)
}

// magnitudeToByte maps a linear magnitude to the dB-scaled byte range.
func magnitudeToByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	if db <= minDecibels {
		return 0
	}
	if db >= maxDecibels {
		return 255
	}
	return byte(math.Round(255 * (db - minDecibels) / (maxDecibels - minDecibels)))
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
