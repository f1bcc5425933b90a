// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/wavelight/voicewave/internal/adapter/ui/fyne/widgets/waveform"
	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/ports"
)

// Window properties.
const (
	appName      = "VoiceWave"
	windowWidth  = 520
	windowHeight = 200
)

// MainWindow is the main UI window implementing the UIView interface.
// It handles all UI rendering and user interactions.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	wave         *waveform.Waveform
	deviceSelect *widget.Select
	toggleButton *widget.Button
	statusLabel  *widget.Label

	// Device option bookkeeping: select shows names, services take IDs.
	deviceIDs map[string]string

	// Lifecycle management
	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window.
func NewMainWindow(app fyneapp.App) *MainWindow {
	w := &MainWindow{
		app:       app,
		deviceIDs: make(map[string]string),
	}

	w.window = app.NewWindow(appName)
	w.buildUI()
	w.window.Resize(fyneapp.Size{
		Width:  windowWidth,
		Height: windowHeight,
	})

	return w
}

// SetPresenter wires the presenter after construction.
func (w *MainWindow) SetPresenter(p *Presenter) {
	w.presenter = p
}

// buildUI constructs the window layout: the waveform fills the window, with
// the device selector and capture toggle along the bottom.
func (w *MainWindow) buildUI() {
	w.wave = waveform.New()

	w.deviceSelect = widget.NewSelect(nil, func(name string) {
		if w.presenter == nil {
			return
		}
		if id, ok := w.deviceIDs[name]; ok {
			w.presenter.SelectDevice(id)
		}
	})
	w.deviceSelect.PlaceHolder = "Default microphone"

	w.toggleButton = widget.NewButton("Start", func() {
		if w.presenter != nil {
			w.presenter.ToggleCapture()
		}
	})

	w.statusLabel = widget.NewLabel("")

	bottom := container.NewBorder(nil, nil, w.statusLabel, w.toggleButton, w.deviceSelect)
	w.window.SetContent(container.NewBorder(nil, bottom, nil, nil, w.wave))
}

// SetFrame pushes a new waveform frame to the widget.
// Must be called on the Fyne UI thread.
func (w *MainWindow) SetFrame(frame domain.RenderFrame) {
	w.wave.SetFrame(frame)
}

// SetDevices replaces the device selector options.
// Must be called on the Fyne UI thread.
func (w *MainWindow) SetDevices(devices []domain.InputDevice, selectedID string) {
	names := make([]string, 0, len(devices))
	w.deviceIDs = make(map[string]string, len(devices))

	var selectedName string
	for _, d := range devices {
		name := d.Name
		if d.IsDefault {
			name += " (default)"
		}
		names = append(names, name)
		w.deviceIDs[name] = d.ID
		if d.ID == selectedID {
			selectedName = name
		}
	}

	w.deviceSelect.Options = names
	if selectedName != "" {
		w.deviceSelect.SetSelected(selectedName)
	} else {
		w.deviceSelect.ClearSelected()
	}
	w.deviceSelect.Refresh()
}

// SetCapturing updates the toggle button to reflect the capture state.
// Must be called on the Fyne UI thread.
func (w *MainWindow) SetCapturing(active bool) {
	if active {
		w.toggleButton.SetText("Stop")
		w.statusLabel.SetText("Listening")
	} else {
		w.toggleButton.SetText("Start")
		w.statusLabel.SetText("")
	}
}

// ShowError displays an error dialog.
// Must be called on the Fyne UI thread.
func (w *MainWindow) ShowError(message string) {
	dialog.ShowInformation("Capture Error", message, w.window)
}

// Window exposes the underlying Fyne window for lifecycle wiring.
func (w *MainWindow) Window() fyneapp.Window {
	return w.window
}

// Show displays the window and enters the UI loop.
func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}

// Close closes the window. Safe to call multiple times.
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// Verify interface implementation at compile time.
var _ ports.WaveformView = (*MainWindow)(nil)
