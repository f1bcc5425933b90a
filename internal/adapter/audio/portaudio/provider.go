// Package portaudio provides a PortAudio-backed adapter implementing the
// CaptureProvider interface. Captured blocks are pushed through the
// band-limiting filter chain into the analyser inside the PortAudio callback,
// so render-loop reads never touch the audio thread's cadence.
package portaudio

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	pa "github.com/gordonklaus/portaudio"

	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/dsp"
	"github.com/wavelight/voicewave/internal/ports"
)

// deviceIDPrefix namespaces device IDs so a persisted selection from another
// backend is never mistaken for a PortAudio index.
const deviceIDPrefix = "pa:"

// Config holds the analysis parameters applied to every acquired stream.
type Config struct {
	AnalysisWindowSize int
	AnalyserSmoothing  float64
	HighpassHz         float64
	LowpassHz          float64
}

// Provider is the PortAudio implementation of the CaptureProvider interface.
//
// Thread-safety: This implementation is thread-safe via sync.Mutex.
type Provider struct {
	logger *slog.Logger
	cfg    Config

	initialized bool
	mu          sync.Mutex
}

// NewProvider creates a PortAudio capture provider. Initialize must be called
// before any other method.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger,
		cfg:    cfg,
	}
}

// Initialize sets up the PortAudio host library.
func (p *Provider) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return domain.ErrAlreadyInitialized
	}
	if err := pa.Initialize(); err != nil {
		return domain.NewCaptureError("initialize", "", "portaudio initialization failed", err)
	}
	p.initialized = true
	return nil
}

// Shutdown releases the PortAudio host library.
func (p *Provider) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return domain.ErrNotInitialized
	}
	p.initialized = false
	if err := pa.Terminate(); err != nil {
		return domain.NewCaptureError("shutdown", "", "portaudio termination failed", err)
	}
	return nil
}

// Devices enumerates the capture-capable devices on the host.
func (p *Provider) Devices() ([]domain.InputDevice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil, domain.ErrNotInitialized
	}

	infos, err := pa.Devices()
	if err != nil {
		return nil, domain.NewCaptureError("devices", "", "device enumeration failed", err)
	}
	defaultInfo, _ := pa.DefaultInputDevice()

	var devices []domain.InputDevice
	for i, info := range infos {
		if info.MaxInputChannels < 1 {
			continue
		}
		devices = append(devices, domain.InputDevice{
			ID:         deviceID(i),
			Name:       info.Name,
			SampleRate: info.DefaultSampleRate,
			IsDefault:  defaultInfo != nil && info == defaultInfo,
		})
	}
	return devices, nil
}

// DefaultDevice returns the host's default capture device.
func (p *Provider) DefaultDevice() (domain.InputDevice, error) {
	devices, err := p.Devices()
	if err != nil {
		return domain.InputDevice{}, err
	}
	for _, d := range devices {
		if d.IsDefault {
			return d, nil
		}
	}
	if len(devices) > 0 {
		return devices[0], nil
	}
	return domain.InputDevice{}, domain.ErrDeviceNotFound
}

// Acquire opens a capture stream against the named device. The default-device
// sentinel selects the host default. Only the named device is attempted;
// fallback policy belongs to the caller.
func (p *Provider) Acquire(deviceIDStr string, constraints domain.CaptureConstraints) (ports.CaptureStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil, domain.ErrNotInitialized
	}

	if p.cfg.AnalysisWindowSize < 2 || p.cfg.AnalysisWindowSize&(p.cfg.AnalysisWindowSize-1) != 0 {
		return nil, domain.NewCaptureError("acquire", deviceIDStr, "analysis window must be a power of two", domain.ErrAnalysisUnavailable)
	}

	info, resolvedID, err := p.resolveDevice(deviceIDStr)
	if err != nil {
		return nil, err
	}

	channels := constraints.Channels
	if channels < 1 {
		channels = 1
	}
	if channels > info.MaxInputChannels {
		channels = info.MaxInputChannels
	}

	s := &stream{
		deviceID:   resolvedID,
		sampleRate: info.DefaultSampleRate,
		channels:   channels,
		chain:      dsp.NewFilterChain(p.cfg.HighpassHz, p.cfg.LowpassHz, info.DefaultSampleRate),
		analyser:   dsp.NewAnalyser(p.cfg.AnalysisWindowSize, info.DefaultSampleRate, p.cfg.AnalyserSmoothing),
	}

	params := pa.StreamParameters{
		Input: pa.StreamDeviceParameters{
			Device:   info,
			Channels: channels,
			Latency:  info.DefaultLowInputLatency,
		},
		SampleRate:      info.DefaultSampleRate,
		FramesPerBuffer: constraints.FramesPerBuffer,
	}

	paStream, err := pa.OpenStream(params, s.onAudio)
	if err != nil {
		return nil, domain.NewCaptureError("acquire", resolvedID, "failed to open capture stream", err)
	}
	s.stream = paStream

	if err := paStream.Start(); err != nil {
		// Hosts sometimes refuse the first start right after a device
		// change; one more attempt usually succeeds. A stream that still
		// won't start stays open and reads as silence.
		if retryErr := paStream.Start(); retryErr != nil && p.logger != nil {
			p.logger.Warn("capture stream did not start",
				"device_id", resolvedID,
				"error", retryErr,
			)
		}
	}
	s.active = true

	if p.logger != nil {
		p.logger.Info("capture stream started",
			"device_id", resolvedID,
			"device_name", info.Name,
			"sample_rate", info.DefaultSampleRate,
			"channels", channels,
		)
	}
	return s, nil
}

// resolveDevice maps a device ID to its PortAudio device info. Held under
// p.mu.
func (p *Provider) resolveDevice(id string) (*pa.DeviceInfo, string, error) {
	if id == domain.DefaultDeviceID {
		info, err := pa.DefaultInputDevice()
		if err != nil || info == nil {
			return nil, "", domain.NewCaptureError("acquire", id, "no default capture device", err)
		}
		infos, err := pa.Devices()
		if err != nil {
			return nil, "", domain.NewCaptureError("acquire", id, "device enumeration failed", err)
		}
		for i, candidate := range infos {
			if candidate == info {
				return info, deviceID(i), nil
			}
		}
		return info, domain.DefaultDeviceID, nil
	}

	index, err := deviceIndex(id)
	if err != nil {
		return nil, "", domain.ErrDeviceNotFound
	}
	infos, err := pa.Devices()
	if err != nil {
		return nil, "", domain.NewCaptureError("acquire", id, "device enumeration failed", err)
	}
	if index < 0 || index >= len(infos) || infos[index].MaxInputChannels < 1 {
		return nil, "", domain.ErrDeviceNotFound
	}
	return infos[index], id, nil
}

func deviceID(index int) string {
	return fmt.Sprintf("%s%d", deviceIDPrefix, index)
}

func deviceIndex(id string) (int, error) {
	raw, ok := strings.CutPrefix(id, deviceIDPrefix)
	if !ok {
		return 0, fmt.Errorf("not a portaudio device id: %q", id)
	}
	return strconv.Atoi(raw)
}

// stream is a live PortAudio capture stream feeding the analyser.
type stream struct {
	deviceID   string
	sampleRate float64
	channels   int

	stream   *pa.Stream
	chain    *dsp.FilterChain
	analyser *dsp.Analyser

	scratch []float64

	active bool
	mu     sync.Mutex
}

// onAudio runs on the PortAudio callback goroutine. Interleaved channels are
// averaged down to mono, band-limited, and pushed into the analyser ring.
func (s *stream) onAudio(in []float32) {
	frames := len(in) / s.channels
	if cap(s.scratch) < frames {
		s.scratch = make([]float64, frames)
	}
	s.scratch = s.scratch[:frames]

	for f := 0; f < frames; f++ {
		var sum float64
		for c := 0; c < s.channels; c++ {
			sum += float64(in[f*s.channels+c])
		}
		s.scratch[f] = sum / float64(s.channels)
	}

	s.chain.Process(s.scratch)
	s.analyser.Push(s.scratch)
}

func (s *stream) ReadTimeDomain(dst []byte) {
	s.analyser.ReadTimeDomain(dst)
}

func (s *stream) ReadFrequencyMagnitudes(dst []byte) {
	s.analyser.ReadFrequencyMagnitudes(dst)
}

func (s *stream) SampleRate() float64 {
	return s.sampleRate
}

func (s *stream) DeviceID() string {
	return s.deviceID
}

func (s *stream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close stops and releases the stream. Safe to call multiple times; the
// analyser is closed only after the callback can no longer fire.
func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	s.active = false

	var firstErr error
	if err := s.stream.Stop(); err != nil {
		firstErr = domain.NewCaptureError("close", s.deviceID, "failed to stop capture stream", err)
	}
	if err := s.stream.Close(); err != nil && firstErr == nil {
		firstErr = domain.NewCaptureError("close", s.deviceID, "failed to close capture stream", err)
	}
	s.analyser.Close()
	return firstErr
}

var (
	_ ports.CaptureProvider = (*Provider)(nil)
	_ ports.CaptureStream   = (*stream)(nil)
)
