// Package service provides business logic for the VoiceWave application.
package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/ports"
	"github.com/wavelight/voicewave/internal/visualizer"
)

// VisualizerService orchestrates the capture session and the per-tick
// analysis pipeline behind the waveform view. It owns the session lifecycle:
// activation, teardown, device switching, and the idle fallback when no
// capture is running.
//
// All operations are thread-safe via sync.Mutex.
type VisualizerService struct {
	// Dependencies (injected)
	logger   *slog.Logger
	provider ports.CaptureProvider
	bus      ports.EventBus
	prefs    ports.PreferencesRepository
	cfg      visualizer.Config

	// State
	stream    ports.CaptureStream
	session   *visualizer.Session
	idle      *visualizer.IdleAnimator
	voice     bool
	closed    bool
	lastFrame domain.RenderFrame

	mu sync.Mutex
}

// NewVisualizerService creates a new visualizer service. The service starts
// idle; call Activate to begin capturing.
func NewVisualizerService(
	logger *slog.Logger,
	provider ports.CaptureProvider,
	bus ports.EventBus,
	prefs ports.PreferencesRepository,
	cfg visualizer.Config,
) *VisualizerService {
	service := &VisualizerService{
		logger:   logger,
		provider: provider,
		bus:      bus,
		prefs:    prefs,
		cfg:      cfg,
		idle:     visualizer.NewIdleAnimator(cfg),
	}

	logger.Debug("visualizer service initialized")

	return service
}

// Activate acquires the preferred capture device and starts the analysis
// session. If the preferred device cannot be opened, the host default is
// tried once before giving up. Calling Activate while already active is a
// no-op.
func (s *VisualizerService) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.stream != nil {
		s.logger.Debug("activate called while already active")
		return nil
	}

	deviceID, err := s.prefs.LoadInputDevice()
	if err != nil {
		s.logger.Warn("failed to load device preference", slog.Any("error", err))
		deviceID = domain.DefaultDeviceID
	}

	if err := s.acquireLocked(deviceID); err != nil {
		return err
	}

	if err := s.prefs.SaveVisualizerEnabled(true); err != nil {
		s.logger.Warn("failed to persist visualizer state", slog.Any("error", err))
	}
	return nil
}

// acquireLocked opens a stream for deviceID, falling back to the default
// device when a named device fails. Held under s.mu.
func (s *VisualizerService) acquireLocked(deviceID string) error {
	stream, err := s.provider.Acquire(deviceID, domain.DefaultCaptureConstraints())
	if err != nil && deviceID != domain.DefaultDeviceID {
		s.logger.Warn("preferred device unavailable, trying default",
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)
		stream, err = s.provider.Acquire(domain.DefaultDeviceID, domain.DefaultCaptureConstraints())
	}
	if err != nil {
		s.logger.Error("capture acquisition failed", slog.Any("error", err))
		s.bus.Publish(domain.NewCaptureErrorEvent(deviceID, err))
		return fmt.Errorf("%w: %v", domain.ErrCaptureUnavailable, err)
	}

	s.stream = stream
	s.session = visualizer.NewSession(s.cfg, stream)
	s.voice = false

	s.logger.Info("capture session started",
		slog.String("device_id", stream.DeviceID()),
		slog.Float64("sample_rate", stream.SampleRate()),
	)
	s.bus.Publish(domain.NewCaptureStartedEvent(stream.DeviceID(), stream.SampleRate()))
	return nil
}

// Deactivate tears the capture session down and returns to the idle
// animation. Safe to call when already idle.
func (s *VisualizerService) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()

	if err := s.prefs.SaveVisualizerEnabled(false); err != nil {
		s.logger.Warn("failed to persist visualizer state", slog.Any("error", err))
	}
	return nil
}

// teardownLocked stops the session if one is running. Held under s.mu.
func (s *VisualizerService) teardownLocked() {
	if s.stream == nil {
		return
	}

	deviceID := s.stream.DeviceID()
	if err := s.stream.Close(); err != nil {
		s.logger.Warn("error closing capture stream", slog.Any("error", err))
	}
	s.stream = nil
	s.session = nil
	if s.voice {
		s.voice = false
		s.bus.Publish(domain.NewVoiceStoppedEvent())
	}
	s.idle.Reset()

	s.logger.Info("capture session stopped", slog.String("device_id", deviceID))
	s.bus.Publish(domain.NewCaptureStoppedEvent(deviceID))
}

// SetInputDevice persists a new device selection. If a session is running it
// is torn down and reacquired against the new device; switching never leaves
// two streams open.
func (s *VisualizerService) SetInputDevice(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}

	if err := s.prefs.SaveInputDevice(deviceID); err != nil {
		s.logger.Warn("failed to persist device selection", slog.Any("error", err))
	}
	s.bus.Publish(domain.NewDeviceChangedEvent(deviceID))

	if s.stream == nil {
		return nil
	}
	if s.stream.DeviceID() == deviceID {
		return nil
	}

	s.teardownLocked()
	return s.acquireLocked(deviceID)
}

// Devices enumerates the available capture devices.
func (s *VisualizerService) Devices() ([]domain.InputDevice, error) {
	return s.provider.Devices()
}

// Active reports whether a capture session is running.
func (s *VisualizerService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

// CurrentDeviceID returns the device the running session was opened against,
// or the default sentinel when idle.
func (s *VisualizerService) CurrentDeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return domain.DefaultDeviceID
	}
	return s.stream.DeviceID()
}

// Tick produces the frame to draw at now. While a session runs, one pipeline
// pass is executed and voice transitions are published; when idle, or after
// the stream dies mid-session, the idle animation is served instead. The
// returned frame's Points slice is reused across ticks.
func (s *VisualizerService) Tick(now time.Time) domain.RenderFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil && !s.stream.Active() {
		// Device vanished under us. Tear down and drop to idle; the UI
		// decides whether to reacquire.
		s.logger.Warn("capture stream ended unexpectedly",
			slog.String("device_id", s.stream.DeviceID()),
		)
		s.bus.Publish(domain.NewCaptureErrorEvent(s.stream.DeviceID(), domain.ErrTrackEnded))
		s.teardownLocked()
	}

	if s.session == nil {
		s.lastFrame = s.idle.Frame(now)
		return s.lastFrame
	}

	frame := s.session.Tick()
	if frame.Voice != s.voice {
		s.voice = frame.Voice
		if s.voice {
			s.bus.Publish(domain.NewVoiceStartedEvent(s.session.VoiceEnergy()))
		} else {
			s.bus.Publish(domain.NewVoiceStoppedEvent())
		}
	}
	s.lastFrame = frame
	return frame
}

// Shutdown stops any running session without touching the persisted
// enabled-on-startup preference. The service cannot be reused afterwards.
func (s *VisualizerService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.teardownLocked()
	s.logger.Debug("visualizer service shut down")
}
