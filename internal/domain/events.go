// Package domain defines events for the event-driven architecture.
// Events replace callbacks and enable loose coupling between the capture
// service, the presenter and logging.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Capture lifecycle events
	EventCaptureStarted EventType = "capture.started"
	EventCaptureStopped EventType = "capture.stopped"
	EventCaptureError   EventType = "capture.error"

	// Device events
	EventDeviceChanged EventType = "device.changed"

	// Voice activity events
	EventVoiceStarted EventType = "voice.started"
	EventVoiceStopped EventType = "voice.stopped"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// CaptureStartedEvent is published when a capture session opens successfully.
type CaptureStartedEvent struct {
	baseEvent
	DeviceID   string
	SampleRate float64
}

// Type returns the event type.
func (e CaptureStartedEvent) Type() EventType {
	return EventCaptureStarted
}

// NewCaptureStartedEvent creates a new CaptureStartedEvent.
func NewCaptureStartedEvent(deviceID string, sampleRate float64) CaptureStartedEvent {
	return CaptureStartedEvent{
		baseEvent:  newBaseEvent(),
		DeviceID:   deviceID,
		SampleRate: sampleRate,
	}
}

// CaptureStoppedEvent is published when a capture session is torn down.
type CaptureStoppedEvent struct {
	baseEvent
	DeviceID string
}

// Type returns the event type.
func (e CaptureStoppedEvent) Type() EventType {
	return EventCaptureStopped
}

// NewCaptureStoppedEvent creates a new CaptureStoppedEvent.
func NewCaptureStoppedEvent(deviceID string) CaptureStoppedEvent {
	return CaptureStoppedEvent{
		baseEvent: newBaseEvent(),
		DeviceID:  deviceID,
	}
}

// CaptureErrorEvent is published when acquisition fails or an active track
// ends unexpectedly. The pipeline falls back to the idle animation.
type CaptureErrorEvent struct {
	baseEvent
	DeviceID string
	Err      error
}

// Type returns the event type.
func (e CaptureErrorEvent) Type() EventType {
	return EventCaptureError
}

// NewCaptureErrorEvent creates a new CaptureErrorEvent.
func NewCaptureErrorEvent(deviceID string, err error) CaptureErrorEvent {
	return CaptureErrorEvent{
		baseEvent: newBaseEvent(),
		DeviceID:  deviceID,
		Err:       err,
	}
}

// DeviceChangedEvent is published when the selected input device changes.
type DeviceChangedEvent struct {
	baseEvent
	DeviceID string
}

// Type returns the event type.
func (e DeviceChangedEvent) Type() EventType {
	return EventDeviceChanged
}

// NewDeviceChangedEvent creates a new DeviceChangedEvent.
func NewDeviceChangedEvent(deviceID string) DeviceChangedEvent {
	return DeviceChangedEvent{
		baseEvent: newBaseEvent(),
		DeviceID:  deviceID,
	}
}

// VoiceStartedEvent is published on the tick where voice activity begins.
type VoiceStartedEvent struct {
	baseEvent
	Energy float64
}

// Type returns the event type.
func (e VoiceStartedEvent) Type() EventType {
	return EventVoiceStarted
}

// NewVoiceStartedEvent creates a new VoiceStartedEvent.
func NewVoiceStartedEvent(energy float64) VoiceStartedEvent {
	return VoiceStartedEvent{
		baseEvent: newBaseEvent(),
		Energy:    energy,
	}
}

// VoiceStoppedEvent is published on the tick where voice activity ends.
type VoiceStoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e VoiceStoppedEvent) Type() EventType {
	return EventVoiceStopped
}

// NewVoiceStoppedEvent creates a new VoiceStoppedEvent.
func NewVoiceStoppedEvent() VoiceStoppedEvent {
	return VoiceStoppedEvent{baseEvent: newBaseEvent()}
}
