// Package domain contains the core domain models for VoiceWave.
// These models are framework-independent and represent the business entities.
package domain

// Point is a single waveform point in the normalized drawing coordinate
// frame. X runs left to right in [0, 1]; Y runs top to bottom in [0, 1] with
// 0.5 being the resting centerline.
type Point struct {
	X float64
	Y float64
}

// StrokeStyle describes how the renderer should composite the waveform line.
// The core never touches drawing primitives; it only emits these hints.
// The line is drawn in two passes: a wide translucent glow pass underneath a
// narrow bright core pass. The gradient hint asks for a center-bright,
// edge-dim horizontal fade.
type StrokeStyle struct {
	// CoreWidth is the main stroke width in logical pixels.
	CoreWidth float64

	// CoreAlpha is the main stroke opacity (0.0-1.0).
	CoreAlpha float64

	// GlowWidth is the glow pass width in logical pixels.
	GlowWidth float64

	// GlowAlpha is the glow pass opacity (0.0-1.0).
	GlowAlpha float64

	// CenterBright is the strength (0.0-1.0) of the horizontal gradient
	// that is brightest at the center of the line and dims toward both
	// edges.
	CenterBright float64
}

// RenderFrame is the immutable per-tick output of the visualizer pipeline.
// It carries an ordered point sequence plus the stroke style and is consumed
// exactly once by the renderer, then discarded.
type RenderFrame struct {
	Points []Point
	Style  StrokeStyle

	// Voice reports whether this frame was produced while voice activity
	// was detected. Idle frames always report false.
	Voice bool
}

// InputDevice describes an audio capture device as seen by the capture
// provider.
type InputDevice struct {
	// ID uniquely identifies the device for acquisition. Empty means the
	// system default device.
	ID string

	// Name is the human-readable device name.
	Name string

	// SampleRate is the device's default sample rate in Hz.
	SampleRate float64

	// IsDefault is true for the system default input device.
	IsDefault bool
}

// DefaultDeviceID selects the system default capture device.
const DefaultDeviceID = ""

// CaptureConstraints requests raw, unprocessed audio from the capture
// provider. The pipeline's own heuristics are the sole source of shaping, so
// any device-side processing must be disabled.
type CaptureConstraints struct {
	// EchoCancellation, NoiseSuppression and AutoGainControl mirror the
	// device-side processing toggles. All default to false (disabled).
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool

	// Channels is the requested channel count (mono capture uses 1).
	Channels int

	// FramesPerBuffer is the capture callback block size in samples.
	FramesPerBuffer int
}

// DefaultCaptureConstraints returns the constraints used for visualization
// capture: mono, raw audio, modest block size for low latency.
func DefaultCaptureConstraints() CaptureConstraints {
	return CaptureConstraints{
		EchoCancellation: false,
		NoiseSuppression: false,
		AutoGainControl:  false,
		Channels:         1,
		FramesPerBuffer:  256,
	}
}
