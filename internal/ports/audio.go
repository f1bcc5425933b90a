// Package ports define interfaces for dependency inversion.
// These interfaces allow the core pipeline to remain independent of the
// underlying audio framework.
package ports

import (
	"github.com/wavelight/voicewave/internal/domain"
)

// FrameSource provides non-blocking per-tick snapshots of the filtered
// capture signal. The underlying audio subsystem updates its state on its
// own execution context; reads never block.
//
// Both read methods fill as much of dst as is available and zero-fill the
// rest. Time-domain bytes are centered at 128 (silence); frequency-magnitude
// bytes are non-negative with 0 meaning at-or-below the analysis floor.
type FrameSource interface {
	// ReadTimeDomain fills dst with the latest time-domain snapshot.
	// dst should be analysisWindowSize bytes long.
	ReadTimeDomain(dst []byte)

	// ReadFrequencyMagnitudes fills dst with the latest frequency-magnitude
	// snapshot. dst should be analysisWindowSize/2 bytes long.
	ReadFrequencyMagnitudes(dst []byte)

	// SampleRate returns the active capture sample rate in Hz.
	SampleRate() float64
}

// CaptureStream is an open microphone stream with analysis attached.
// Exactly one stream is live at a time per visualizer instance.
//
// Implementations must be safe for concurrent use: the audio subsystem
// writes on its own goroutine while the tick loop reads snapshots.
type CaptureStream interface {
	FrameSource

	// DeviceID returns the id the stream was opened against (empty for the
	// system default device).
	DeviceID() string

	// Active reports whether the underlying capture track is still
	// delivering audio. It turns false when the track ends unexpectedly.
	Active() bool

	// Close stops the capture track and releases the analysis context, in
	// that order. Close is idempotent; calling it twice returns nil.
	Close() error
}

// CaptureProvider acquires capture streams and enumerates input devices.
// This abstracts the underlying audio library (PortAudio) and allows for
// testing with mocks.
type CaptureProvider interface {
	// Acquire opens a capture stream against the given device id, requesting
	// raw (unprocessed) audio per the constraints. An empty device id selects
	// the system default device.
	//
	// Callers implement the fallback policy (retry against the default
	// device) on top of this; Acquire itself attempts only the named device.
	Acquire(deviceID string, constraints domain.CaptureConstraints) (CaptureStream, error)

	// Devices lists the available audio input devices.
	Devices() ([]domain.InputDevice, error)

	// DefaultDevice returns the system default input device.
	DefaultDevice() (domain.InputDevice, error)
}
