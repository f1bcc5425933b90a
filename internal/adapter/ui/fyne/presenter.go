package fyne

import (
	"log/slog"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"

	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/ports"
	"github.com/wavelight/voicewave/internal/service"
)

// frameInterval is the render cadence, roughly 60 frames per second.
const frameInterval = 16 * time.Millisecond

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	ports.WaveformView

	// SetCapturing reflects whether a capture session is running.
	SetCapturing(active bool)
}

// Presenter implements the Presenter pattern (MVP architecture).
// It coordinates between the visualizer service and the UI, handling all
// event-driven updates.
//
// Responsibilities:
// - Drive the render loop and push frames to the view
// - Subscribe to events from the event bus
// - Translate UI commands to service method calls
//
// Thread-safety: All operations are thread-safe.
type Presenter struct {
	// Dependencies
	logger *slog.Logger

	// Services (injected)
	visualizerService *service.VisualizerService

	// Event bus for subscriptions
	EventBus ports.EventBus

	// UI view
	view UIView

	// Concurrency control
	frameTicker   *time.Ticker
	stopFrameChan chan struct{}
	shutdownOnce  sync.Once
}

// NewPresenter creates a new presenter and starts the render loop.
func NewPresenter(
	logger *slog.Logger,
	visualizerService *service.VisualizerService,
	eventBus ports.EventBus,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger:            logger,
		visualizerService: visualizerService,
		EventBus:          eventBus,
		view:              view,
		stopFrameChan:     make(chan struct{}),
	}

	p.subscribeToEvents()
	p.syncInitialState()
	p.startFrameUpdates()

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventCaptureStarted: p.onCaptureStarted,
		domain.EventCaptureStopped: p.onCaptureStopped,
		domain.EventCaptureError:   p.onCaptureError,
		domain.EventDeviceChanged:  p.onDeviceChanged,
	}

	for eventType, handler := range subscriptions {
		p.EventBus.Subscribe(eventType, handler)
	}
}

// syncInitialState populates the device list and capture state on startup.
func (p *Presenter) syncInitialState() {
	p.RefreshDevices()
	p.view.SetCapturing(p.visualizerService.Active())
}

// startFrameUpdates runs the render loop: one service tick per frame, with
// the resulting frame marshaled onto the UI thread. The frame's point slice
// is copied before crossing goroutines because the service reuses it.
func (p *Presenter) startFrameUpdates() {
	p.frameTicker = time.NewTicker(frameInterval)

	go func() {
		for {
			select {
			case now := <-p.frameTicker.C:
				frame := p.visualizerService.Tick(now)
				frame.Points = append([]domain.Point(nil), frame.Points...)
				fyneapp.Do(func() {
					p.view.SetFrame(frame)
				})
			case <-p.stopFrameChan:
				return
			}
		}
	}()
}

// ToggleCapture starts capture when idle and stops it when active.
func (p *Presenter) ToggleCapture() {
	if p.visualizerService.Active() {
		if err := p.visualizerService.Deactivate(); err != nil {
			p.logger.Warn("deactivate failed", slog.Any("error", err))
		}
		return
	}
	if err := p.visualizerService.Activate(); err != nil {
		p.logger.Warn("activate failed", slog.Any("error", err))
	}
}

// SelectDevice switches capture to the given device.
func (p *Presenter) SelectDevice(deviceID string) {
	if err := p.visualizerService.SetInputDevice(deviceID); err != nil {
		p.logger.Warn("device switch failed",
			slog.String("device_id", deviceID),
			slog.Any("error", err),
		)
	}
}

// RefreshDevices re-enumerates capture devices into the view.
func (p *Presenter) RefreshDevices() {
	devices, err := p.visualizerService.Devices()
	if err != nil {
		p.logger.Warn("device enumeration failed", slog.Any("error", err))
		return
	}
	selected := p.visualizerService.CurrentDeviceID()
	fyneapp.Do(func() {
		p.view.SetDevices(devices, selected)
	})
}

func (p *Presenter) onCaptureStarted(event domain.Event) {
	started, ok := event.(domain.CaptureStartedEvent)
	if !ok {
		return
	}
	p.logger.Debug("capture started", slog.String("device_id", started.DeviceID))
	fyneapp.Do(func() {
		p.view.SetCapturing(true)
	})
}

func (p *Presenter) onCaptureStopped(event domain.Event) {
	fyneapp.Do(func() {
		p.view.SetCapturing(false)
	})
}

func (p *Presenter) onCaptureError(event domain.Event) {
	capErr, ok := event.(domain.CaptureErrorEvent)
	if !ok {
		return
	}
	p.logger.Error("capture error",
		slog.String("device_id", capErr.DeviceID),
		slog.Any("error", capErr.Err),
	)
	fyneapp.Do(func() {
		p.view.ShowError("Microphone unavailable. Check the input device and try again.")
	})
}

func (p *Presenter) onDeviceChanged(event domain.Event) {
	// The service publishes this while holding its own lock; refresh from a
	// fresh goroutine so querying it back does not deadlock.
	go p.RefreshDevices()
}

// Shutdown cleans up resources.
// Safe to call multiple times.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.logger.Debug("presenter shutting down")
		if p.frameTicker != nil {
			p.frameTicker.Stop()
		}
		close(p.stopFrameChan)
	})
}
