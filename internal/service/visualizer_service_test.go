package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavelight/voicewave/internal/adapter/audio/mock"
	"github.com/wavelight/voicewave/internal/adapter/eventbus"
	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/testutil"
	"github.com/wavelight/voicewave/internal/visualizer"
)

// Mock preferences repository for testing
type mockPreferencesRepository struct {
	mu       sync.RWMutex
	deviceID string
	enabled  bool
}

func newMockPreferencesRepository() *mockPreferencesRepository {
	return &mockPreferencesRepository{
		deviceID: domain.DefaultDeviceID,
	}
}

func (m *mockPreferencesRepository) SaveInputDevice(deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceID = deviceID
	return nil
}

func (m *mockPreferencesRepository) LoadInputDevice() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deviceID, nil
}

func (m *mockPreferencesRepository) SaveVisualizerEnabled(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
	return nil
}

func (m *mockPreferencesRepository) LoadVisualizerEnabled() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled, nil
}

func (m *mockPreferencesRepository) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceID = domain.DefaultDeviceID
	m.enabled = false
	return nil
}

type serviceFixture struct {
	service  *VisualizerService
	provider *mock.Provider
	bus      *eventbus.SyncEventBus
	prefs    *mockPreferencesRepository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := mock.NewProvider()
	bus := eventbus.NewSyncEventBus()
	prefs := newMockPreferencesRepository()

	svc := NewVisualizerService(logger, provider, bus, prefs, visualizer.DefaultConfig())
	t.Cleanup(func() {
		svc.Shutdown()
		_ = bus.Close()
	})

	return &serviceFixture{service: svc, provider: provider, bus: bus, prefs: prefs}
}

// collectEvents subscribes to the given event types and returns a slice that
// accumulates them. SyncEventBus delivers synchronously, so no extra
// synchronization is needed beyond the returned mutex.
func collectEvents(f *serviceFixture, types ...domain.EventType) (*[]domain.Event, *sync.Mutex) {
	var (
		events []domain.Event
		mu     sync.Mutex
	)
	for _, et := range types {
		f.bus.Subscribe(et, func(e domain.Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})
	}
	return &events, &mu
}

func TestVisualizerService_ActivateStartsCapture(t *testing.T) {
	f := newServiceFixture(t)
	events, mu := collectEvents(f, domain.EventCaptureStarted)

	require.NoError(t, f.service.Activate())
	assert.True(t, f.service.Active())
	assert.Equal(t, "mock-0", f.service.CurrentDeviceID())

	enabled, _ := f.prefs.LoadVisualizerEnabled()
	assert.True(t, enabled)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *events, 1)
	started := (*events)[0].(domain.CaptureStartedEvent)
	assert.Equal(t, "mock-0", started.DeviceID)
}

func TestVisualizerService_ActivateIdempotent(t *testing.T) {
	f := newServiceFixture(t)

	require.NoError(t, f.service.Activate())
	require.NoError(t, f.service.Activate())

	open := 0
	for _, s := range f.provider.Streams() {
		if s.Active() {
			open++
		}
	}
	assert.Equal(t, 1, open, "second activate must not open another stream")
}

func TestVisualizerService_ActivateFallsBackToDefault(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.prefs.SaveInputDevice("mock-1"))
	f.provider.SetFailAcquireOnce()

	require.NoError(t, f.service.Activate())
	assert.True(t, f.service.Active())
	assert.Equal(t, "mock-0", f.service.CurrentDeviceID())
}

func TestVisualizerService_ActivateFailure(t *testing.T) {
	f := newServiceFixture(t)
	events, mu := collectEvents(f, domain.EventCaptureError)
	f.provider.SetFailAcquire(true)

	err := f.service.Activate()
	assert.ErrorIs(t, err, domain.ErrCaptureUnavailable)
	assert.False(t, f.service.Active())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, *events, 1)
}

func TestVisualizerService_DeactivateIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.service.Activate())

	require.NoError(t, f.service.Deactivate())
	assert.False(t, f.service.Active())
	require.NoError(t, f.service.Deactivate())

	for _, s := range f.provider.Streams() {
		assert.False(t, s.Active())
	}
	enabled, _ := f.prefs.LoadVisualizerEnabled()
	assert.False(t, enabled)
}

func TestVisualizerService_SetInputDeviceWhileActive(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.service.Activate())
	require.Equal(t, "mock-0", f.service.CurrentDeviceID())

	require.NoError(t, f.service.SetInputDevice("mock-1"))
	assert.Equal(t, "mock-1", f.service.CurrentDeviceID())

	// Old stream closed, exactly one still open.
	open := 0
	for _, s := range f.provider.Streams() {
		if s.Active() {
			open++
		}
	}
	assert.Equal(t, 1, open)

	saved, _ := f.prefs.LoadInputDevice()
	assert.Equal(t, "mock-1", saved)
}

func TestVisualizerService_SetInputDeviceWhileIdle(t *testing.T) {
	f := newServiceFixture(t)

	require.NoError(t, f.service.SetInputDevice("mock-1"))
	assert.False(t, f.service.Active(), "selection alone must not start capture")

	saved, _ := f.prefs.LoadInputDevice()
	assert.Equal(t, "mock-1", saved)
}

func TestVisualizerService_SetInputDeviceSameDevice(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.service.Activate())

	require.NoError(t, f.service.SetInputDevice("mock-0"))
	assert.Len(t, f.provider.Streams(), 1, "same-device selection must not reacquire")
}

func TestVisualizerService_IdleTickBreathes(t *testing.T) {
	f := newServiceFixture(t)

	now := time.Now()
	frame := f.service.Tick(now)
	assert.False(t, frame.Voice)
	for _, p := range frame.Points {
		assert.InDelta(t, 0.5, p.Y, 0.05)
	}
}

func TestVisualizerService_VoiceTransitionsPublished(t *testing.T) {
	f := newServiceFixture(t)
	events, mu := collectEvents(f, domain.EventVoiceStarted, domain.EventVoiceStopped)

	require.NoError(t, f.service.Activate())
	stream := f.provider.Streams()[0]

	now := time.Now()
	for i := 0; i < 5; i++ {
		f.service.Tick(now)
	}
	mu.Lock()
	require.Empty(t, *events, "silence must not publish voice events")
	mu.Unlock()

	stream.SetSpeaking(true)
	var voiced bool
	for i := 0; i < 10; i++ {
		if f.service.Tick(now).Voice {
			voiced = true
			break
		}
	}
	require.True(t, voiced)

	stream.SetSpeaking(false)
	for i := 0; i < 10; i++ {
		f.service.Tick(now)
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, *events)
	assert.Equal(t, domain.EventVoiceStarted, (*events)[0].Type())
	assert.Equal(t, domain.EventVoiceStopped, (*events)[len(*events)-1].Type())
}

func TestVisualizerService_StreamLossFallsBackToIdle(t *testing.T) {
	f := newServiceFixture(t)
	events, mu := collectEvents(f, domain.EventCaptureError, domain.EventCaptureStopped)

	require.NoError(t, f.service.Activate())
	require.NoError(t, f.provider.Streams()[0].Close())

	frame := f.service.Tick(time.Now())
	assert.False(t, frame.Voice)
	assert.False(t, f.service.Active())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *events, 2)
	assert.Equal(t, domain.EventCaptureError, (*events)[0].Type())
	assert.Equal(t, domain.EventCaptureStopped, (*events)[1].Type())
}

func TestVisualizerService_NoGoroutineLeaks(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewSyncEventBus()
	svc := NewVisualizerService(logger, mock.NewProvider(), bus, newMockPreferencesRepository(), visualizer.DefaultConfig())

	require.NoError(t, svc.Activate())
	svc.Tick(time.Now())
	svc.Shutdown()
	require.NoError(t, bus.Close())
}

func TestVisualizerService_ShutdownStopsSession(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.service.Activate())

	f.service.Shutdown()
	assert.False(t, f.service.Active())
	assert.ErrorIs(t, f.service.Activate(), domain.ErrSessionClosed)

	// Startup preference survives shutdown.
	enabled, _ := f.prefs.LoadVisualizerEnabled()
	assert.True(t, enabled)
}
