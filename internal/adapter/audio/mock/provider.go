// Package mock provides a mock implementation of the CaptureProvider
// interface. This is used for testing services without requiring a real
// microphone, and as the capture backend in headless demo mode.
package mock

import (
	"log/slog"
	"math"
	"sync"

	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/ports"
)

const mockSampleRate = 48000

// Provider is a mock implementation of the CaptureProvider interface. It
// hands out scriptable streams that synthesize audio snapshots in memory.
//
// Thread-safety: This implementation is thread-safe.
type Provider struct {
	logger *slog.Logger

	devices []domain.InputDevice
	streams []*Stream
	mu      sync.RWMutex

	// Behavior configuration (for testing error scenarios)
	failAcquire     bool
	failAcquireOnce bool
	failDevices     bool
}

// NewProvider creates a mock provider with two synthetic input devices.
func NewProvider() *Provider {
	return &Provider{
		devices: []domain.InputDevice{
			{ID: "mock-0", Name: "Mock Microphone", SampleRate: mockSampleRate, IsDefault: true},
			{ID: "mock-1", Name: "Mock Headset", SampleRate: mockSampleRate},
		},
	}
}

// SetLogger sets the logger for this provider.
func (p *Provider) SetLogger(logger *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = logger
}

// SetDevices replaces the synthetic device list (for testing).
func (p *Provider) SetDevices(devices []domain.InputDevice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.devices = devices
}

// SetFailAcquire configures the provider to fail all acquisitions (for
// testing).
func (p *Provider) SetFailAcquire(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failAcquire = fail
}

// SetFailAcquireOnce configures the provider to fail only the next
// acquisition, so fallback paths can be exercised (for testing).
func (p *Provider) SetFailAcquireOnce() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failAcquireOnce = true
}

// SetFailDevices configures device enumeration to fail (for testing).
func (p *Provider) SetFailDevices(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failDevices = fail
}

// Streams returns every stream handed out so far, open or closed (for
// testing).
func (p *Provider) Streams() []*Stream {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Stream, len(p.streams))
	copy(out, p.streams)
	return out
}

// Acquire opens a mock stream for the named device. The default-device
// sentinel resolves to the provider's default entry.
func (p *Provider) Acquire(deviceID string, constraints domain.CaptureConstraints) (ports.CaptureStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failAcquire || p.failAcquireOnce {
		p.failAcquireOnce = false
		return nil, domain.NewCaptureError("acquire", deviceID, "mock acquisition failed", nil)
	}

	resolved := deviceID
	if resolved == domain.DefaultDeviceID {
		resolved = p.defaultLocked().ID
	} else {
		found := false
		for _, d := range p.devices {
			if d.ID == resolved {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrDeviceNotFound
		}
	}

	s := newStream(resolved, mockSampleRate, constraints)
	p.streams = append(p.streams, s)
	if p.logger != nil {
		p.logger.Debug("mock capture stream acquired", "device_id", resolved)
	}
	return s, nil
}

// Devices returns the synthetic device list.
func (p *Provider) Devices() ([]domain.InputDevice, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.failDevices {
		return nil, domain.NewCaptureError("devices", "", "mock enumeration failed", nil)
	}
	out := make([]domain.InputDevice, len(p.devices))
	copy(out, p.devices)
	return out, nil
}

// DefaultDevice returns the synthetic default device.
func (p *Provider) DefaultDevice() (domain.InputDevice, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.failDevices {
		return domain.InputDevice{}, domain.NewCaptureError("default_device", "", "mock enumeration failed", nil)
	}
	return p.defaultLocked(), nil
}

func (p *Provider) defaultLocked() domain.InputDevice {
	for _, d := range p.devices {
		if d.IsDefault {
			return d
		}
	}
	if len(p.devices) > 0 {
		return p.devices[0]
	}
	return domain.InputDevice{ID: "mock-0", Name: "Mock Microphone", SampleRate: mockSampleRate, IsDefault: true}
}

// Stream is a scriptable mock capture stream. It synthesizes a speech-band
// tone when speaking is enabled and flat silence otherwise.
type Stream struct {
	deviceID    string
	sampleRate  float64
	constraints domain.CaptureConstraints

	mu       sync.RWMutex
	active   bool
	speaking bool
	phase    float64
}

func newStream(deviceID string, sampleRate float64, constraints domain.CaptureConstraints) *Stream {
	return &Stream{
		deviceID:    deviceID,
		sampleRate:  sampleRate,
		constraints: constraints,
		active:      true,
	}
}

// SetSpeaking toggles synthetic speech on the stream (for testing).
func (s *Stream) SetSpeaking(speaking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speaking = speaking
}

// Constraints returns the constraints the stream was acquired with (for
// testing).
func (s *Stream) Constraints() domain.CaptureConstraints {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.constraints
}

// ReadTimeDomain fills dst with a synthetic snapshot: a 1 kHz tone while
// speaking, the byte midpoint otherwise.
func (s *Stream) ReadTimeDomain(dst []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || !s.speaking {
		for i := range dst {
			dst[i] = 128
		}
		return
	}
	for i := range dst {
		v := 0.6 * math.Sin(s.phase+2*math.Pi*1000*float64(i)/s.sampleRate)
		dst[i] = byte(128 + v*127)
	}
	s.phase += 0.3
}

// ReadFrequencyMagnitudes fills dst with a synthetic spectrum concentrated in
// the speech band while speaking, zeros otherwise.
func (s *Stream) ReadFrequencyMagnitudes(dst []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range dst {
		dst[i] = 0
	}
	if !s.active || !s.speaking {
		return
	}
	binHz := s.sampleRate / float64(len(dst)*2)
	lo := int(math.Ceil(300 / binHz))
	hi := int(math.Floor(3400 / binHz))
	for k := lo; k <= hi && k < len(dst); k++ {
		dst[k] = 200
	}
}

// SampleRate returns the stream's capture sample rate.
func (s *Stream) SampleRate() float64 {
	return s.sampleRate
}

// DeviceID returns the resolved device the stream was opened against.
func (s *Stream) DeviceID() string {
	return s.deviceID
}

// Active reports whether the stream is still open.
func (s *Stream) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Close releases the stream. Safe to call multiple times.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	return nil
}

var (
	_ ports.CaptureProvider = (*Provider)(nil)
	_ ports.CaptureStream   = (*Stream)(nil)
)
