// Package ports define repository interfaces for settings persistence.
package ports

// PreferencesRepository persists user settings across sessions.
// The visualizer core never reads preferences directly; the application
// layer loads them at startup and applies changes through the service.
type PreferencesRepository interface {
	// SaveInputDevice persists the selected input device id.
	// An empty id means the system default device.
	SaveInputDevice(deviceID string) error

	// LoadInputDevice retrieves the saved input device id.
	// Returns the empty string (default device) when nothing is saved.
	LoadInputDevice() (string, error)

	// SaveVisualizerEnabled persists whether live capture visualization is
	// active (false means idle animation only).
	SaveVisualizerEnabled(enabled bool) error

	// LoadVisualizerEnabled retrieves the saved visualization toggle.
	LoadVisualizerEnabled() (bool, error)

	// Clear removes all saved preferences.
	Clear() error
}
