package order

import (
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// ErrGeoEventIsNotConstructed is returned when attempting to use an improperly
// initialized GeoEvent. GeoEvents must be created via NewGeoEvent.
var ErrGeoEventIsNotConstructed = errs.NewValueIsRequiredError(
	"geo event must be created via NewGeoEvent constructor")

// GeoEvent is a timestamped geolocation capture. It records where and when the
// technician checked in or checked out of a service order.
//
// GeoEvent is an immutable value object. The zero value is invalid and fails
// validation - use the constructor to create instances.
type GeoEvent struct { //nolint:recvcheck //using for validation
	occurredAt time.Time
	point      kernel.GeoPoint
	guard      guard.ConstructorGuard
}

// NewGeoEvent creates a GeoEvent from a capture timestamp and a validated
// geographic point.
//
// Parameters:
//   - occurredAt: When the location fix was taken (must be non-zero)
//   - point: The captured coordinate (must be a constructed kernel.GeoPoint)
//
// Returns:
//   - GeoEvent: A valid geo event instance
//   - error: Validation error if the timestamp is zero or the point is invalid
func NewGeoEvent(occurredAt time.Time, point kernel.GeoPoint) (GeoEvent, error) {
	event := GeoEvent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(event.setOccurredAt(occurredAt), event.setPoint(point)); err != nil {
		return GeoEvent{}, err
	}

	return event, nil
}

// Validate checks if the GeoEvent was properly constructed using the constructor.
func (e GeoEvent) Validate() error {
	return e.guard.Validate(ErrGeoEventIsNotConstructed)
}

// OccurredAt returns the moment the location fix was taken.
func (e GeoEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Point returns the captured geographic coordinate.
func (e GeoEvent) Point() kernel.GeoPoint {
	return e.point
}

// String returns a human-readable representation of the event.
// This method implements the fmt.Stringer interface.
func (e GeoEvent) String() string {
	return fmt.Sprintf("GeoEvent(%s at %s)", e.point, e.occurredAt.Format(time.RFC3339))
}

func (e *GeoEvent) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}

	e.occurredAt = occurredAt
	return nil
}

func (e *GeoEvent) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	e.point = point
	return nil
}
