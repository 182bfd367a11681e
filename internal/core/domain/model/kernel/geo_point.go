package kernel

import (
	"errors"
	"fmt"

	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate captured from a device location fix.
// GeoPoint is an immutable value object that ensures latitude and longitude are
// always within valid WGS84 bounds. The zero value of GeoPoint is invalid and will
// fail validation - use the constructor to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(-23.5505, -46.6333)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Position: %s", point) // Output: GeoPoint(-23.550500,-46.633300)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]. Returns an error if either coordinate is
// outside the valid bounds.
//
// Parameters:
//   - latitude: Decimal-degree latitude (must be between -90 and 90 inclusive)
//   - longitude: Decimal-degree longitude (must be between -180 and 180 inclusive)
//
// Returns:
//   - GeoPoint: A valid geo point instance
//   - error: Validation error if coordinates are out of bounds
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
//
// Returns:
//   - error: ErrGeoPointIsNotConstructed if the point was not properly initialized, nil otherwise
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the decimal-degree latitude of the point.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the decimal-degree longitude of the point.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable string representation of the GeoPoint.
// The format is "GeoPoint(lat,lng)" which is useful for debugging and logging.
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two geo points for equality.
// Two points are considered equal if they have the same latitude and longitude.
// Both points must be properly constructed for the comparison to succeed.
//
// Parameters:
//   - other: The GeoPoint to compare with
//
// Returns:
//   - bool: true if points are equal, false otherwise
//   - error: Validation error if either point is improperly constructed
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers to enable self-encapsulated validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers to enable self-encapsulated validation during construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}
