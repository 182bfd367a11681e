package order

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// ErrPhotoIsNotConstructed is returned when attempting to use an improperly
// initialized Photo. Photos must be created via NewPhoto.
var ErrPhotoIsNotConstructed = errs.NewValueIsRequiredError(
	"photo must be created via NewPhoto constructor")

// Photo is an evidence photo captured during field execution and already
// persisted in blob storage. The URL is the storage-issued public URL; a Photo
// is only ever constructed after a successful upload, so no Photo carries a
// broken reference.
//
// Photo is an immutable value object. The zero value is invalid and fails
// validation - use the constructor to create instances.
type Photo struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	url        string
	caption    string
	capturedAt time.Time
	guard      guard.ConstructorGuard
}

// NewPhoto creates a Photo record for an already-uploaded evidence image.
//
// Parameters:
//   - id: Unique identifier of the photo record (must be a valid UUID)
//   - url: Storage-issued URL of the uploaded image (must be non-empty)
//   - caption: Optional free-text caption (may be empty)
//   - capturedAt: When the photo was taken (must be non-zero)
//
// Returns:
//   - Photo: A valid photo instance
//   - error: Validation error if any parameter is invalid
func NewPhoto(id kernel.UUID, url string, caption string, capturedAt time.Time) (Photo, error) {
	photo := Photo{
		caption: caption,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		photo.setID(id),
		photo.setURL(url),
		photo.setCapturedAt(capturedAt),
	); err != nil {
		return Photo{}, err
	}

	return photo, nil
}

// Validate checks if the Photo was properly constructed using the constructor.
func (p Photo) Validate() error {
	return p.guard.Validate(ErrPhotoIsNotConstructed)
}

// ID returns the photo record's unique identifier.
func (p Photo) ID() kernel.UUID {
	return p.id
}

// URL returns the storage-issued URL of the uploaded image.
func (p Photo) URL() string {
	return p.url
}

// Caption returns the free-text caption, which may be empty.
func (p Photo) Caption() string {
	return p.caption
}

// CapturedAt returns when the photo was taken.
func (p Photo) CapturedAt() time.Time {
	return p.capturedAt
}

func (p *Photo) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Photo) setURL(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("url")
	}

	p.url = url
	return nil
}

func (p *Photo) setCapturedAt(capturedAt time.Time) error {
	if capturedAt.IsZero() {
		return errs.NewValueIsRequiredError("capturedAt")
	}

	p.capturedAt = capturedAt
	return nil
}
