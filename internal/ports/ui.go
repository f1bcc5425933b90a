// Package ports define the renderer interface for view abstraction.
// This interface allows the presenter to hand frames to the UI without
// depending on Fyne directly.
package ports

import (
	"github.com/wavelight/voicewave/internal/domain"
)

// WaveformView is the external renderer consumed by the presenter. It is
// responsible for all pixel-level concerns: DPI scaling, stroke and gradient
// compositing, and the glow pass. The core only emits RenderFrames.
//
// Thread-safety: SetFrame may be called from the tick goroutine; the
// implementation must marshal to its UI thread as needed.
type WaveformView interface {
	// SetFrame hands the view one render frame. The frame is consumed once
	// and must not be retained past the next call.
	SetFrame(frame domain.RenderFrame)

	// SetDevices updates the device selector with the available input
	// devices and marks the currently selected one.
	SetDevices(devices []domain.InputDevice, selectedID string)

	// ShowError surfaces a capture error to the user without interrupting
	// the idle animation.
	ShowError(message string)
}
