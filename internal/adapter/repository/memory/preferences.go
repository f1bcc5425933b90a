// Package memory provides repository adapters backed by Fyne's preferences
// store.
package memory

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/ports"
)

// PreferencesRepository implements ports.PreferencesRepository using Fyne preferences.
// This provides a thin wrapper around Fyne's preferences system with proper error handling.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences' repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// SaveInputDevice persists the selected capture device ID.
func (r *PreferencesRepository) SaveInputDevice(deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString("preferences.input_device", deviceID)
	return nil
}

// LoadInputDevice retrieves the saved capture device ID. Falls back to the
// default-device sentinel when nothing was saved.
func (r *PreferencesRepository) LoadInputDevice() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deviceID := r.prefs.StringWithFallback("preferences.input_device", domain.DefaultDeviceID)
	return deviceID, nil
}

// SaveVisualizerEnabled persists whether the waveform should capture on
// startup.
func (r *PreferencesRepository) SaveVisualizerEnabled(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetBool("preferences.visualizer_enabled", enabled)
	return nil
}

// LoadVisualizerEnabled retrieves the saved startup capture state.
func (r *PreferencesRepository) LoadVisualizerEnabled() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled := r.prefs.BoolWithFallback("preferences.visualizer_enabled", false)
	return enabled, nil
}

// Clear removes all saved preferences.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue("preferences.input_device")
	r.prefs.RemoveValue("preferences.visualizer_enabled")

	return nil
}

// Verify interface implementation
var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
