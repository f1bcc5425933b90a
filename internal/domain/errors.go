// Package domain defines domain-specific errors.
// These errors represent capture and analysis failures and are independent
// of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrCaptureUnavailable is returned when no capture device could be
	// opened, even after falling back to the default device.
	ErrCaptureUnavailable = errors.New("capture device unavailable")

	// ErrAnalysisUnavailable is returned when the frequency-analysis
	// component could not be constructed.
	ErrAnalysisUnavailable = errors.New("audio analysis unavailable")

	// ErrTrackEnded is reported when an active capture track stops
	// unexpectedly mid-session. It triggers teardown and a fall back to
	// the idle animation; it never propagates into the render loop.
	ErrTrackEnded = errors.New("capture track ended")

	// ErrSessionClosed is returned when an operation is attempted on a
	// session that has already been torn down.
	ErrSessionClosed = errors.New("capture session closed")

	// ErrDeviceNotFound is returned when a requested device id does not
	// match any available input device.
	ErrDeviceNotFound = errors.New("input device not found")

	// ErrNotInitialized is returned when an operation is attempted on an
	// uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyInitialized is returned when attempting to initialize an
	// already initialized component.
	ErrAlreadyInitialized = errors.New("component already initialized")

	// ErrInvalidPointCount is returned when a point count outside the
	// supported range is configured.
	ErrInvalidPointCount = errors.New("invalid point count")
)

// CaptureError wraps a low-level capture failure with the operation and the
// device that was being acquired.
type CaptureError struct {
	Op       string // Operation that failed (e.g. "acquire", "start", "stop")
	DeviceID string // Device id (empty for the default device)
	Message  string // Error message
	Err      error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	if e.DeviceID != "" {
		return fmt.Sprintf("capture %s failed for device '%s': %s", e.Op, e.DeviceID, e.Message)
	}
	return fmt.Sprintf("capture %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError.
func NewCaptureError(op, deviceID, message string, err error) *CaptureError {
	return &CaptureError{
		Op:       op,
		DeviceID: deviceID,
		Message:  message,
		Err:      err,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g. "VisualizerService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
