package ports

import (
	"context"
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/order"
)

// ErrLocationUnobtainable is the unwrap target for GeoError, so callers can
// classify location failures with errors.Is.
var ErrLocationUnobtainable = errors.New("location could not be obtained")

// GeoFailureReason classifies why a location fix could not be acquired.
// The workflow treats every reason uniformly (abort the transition, surface a
// retryable error); the reason is carried for the user-facing message.
type GeoFailureReason string

const (
	// GeoPermissionDenied means the technician's device refused the location request.
	GeoPermissionDenied GeoFailureReason = "permission denied"

	// GeoUnavailable means no location capability or position is available.
	GeoUnavailable GeoFailureReason = "unavailable"

	// GeoTimeout means the location fix did not arrive in time.
	GeoTimeout GeoFailureReason = "timeout"
)

// Locator defines the contract for acquiring a one-shot, timestamped
// geolocation fix for a technician's device. No continuous tracking and no
// internal retries: the caller decides whether to retry a failed fix.
type Locator interface {
	// Capture requests a single location fix and returns it as a GeoEvent
	// stamped with the capture time. On failure it returns a GeoError; the
	// zero GeoEvent it returns alongside must not be used.
	Capture(ctx context.Context, technicianID string) (order.GeoEvent, error)
}

// GeoError reports a failed location fix.
type GeoError struct {
	Reason GeoFailureReason
	Cause  error
}

// NewGeoError creates a GeoError with the given reason.
func NewGeoError(reason GeoFailureReason, cause error) *GeoError {
	return &GeoError{Reason: reason, Cause: cause}
}

func (e *GeoError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrLocationUnobtainable, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrLocationUnobtainable, e.Reason)
}

func (e *GeoError) Unwrap() error {
	return ErrLocationUnobtainable
}
