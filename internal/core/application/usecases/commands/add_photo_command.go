package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrAddPhotoCommandIsNotConstructed = errors.New(
		"AddPhotoCommand must be created via NewAddPhotoCommand constructor",
	)
	ErrPhotoDataIsRequired   = errors.New("photo data is required")
	ErrCapturedAtIsRequired  = errors.New("photo capture time is required")
	ErrContentTypeIsRequired = errors.New("photo content type is required")
)

// AddPhotoCommand represents a request to attach an evidence photo to an
// order. Carries the raw image bytes; uploading them to blob storage is the
// handler's job.
type AddPhotoCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	photoID     kernel.UUID
	caption     string
	contentType string
	data        []byte
	capturedAt  time.Time

	guard guard.ConstructorGuard
}

// NewAddPhotoCommand creates a command to attach an evidence photo.
// The caption may be empty; data, content type, and capture time must be set.
func NewAddPhotoCommand(orderID kernel.UUID, photoID kernel.UUID, caption string,
	contentType string, data []byte, capturedAt time.Time) (AddPhotoCommand, error) {
	cmd := AddPhotoCommand{
		caption: caption,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPhotoID(photoID),
		cmd.setContentType(contentType),
		cmd.setData(data),
		cmd.setCapturedAt(capturedAt),
	); err != nil {
		return AddPhotoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddPhotoCommandIsNotConstructed if validation fails.
func (c AddPhotoCommand) Validate() error {
	return c.guard.Validate(ErrAddPhotoCommandIsNotConstructed)
}

// OrderID returns the order the photo belongs to.
func (c AddPhotoCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PhotoID returns the identifier assigned to the new photo.
func (c AddPhotoCommand) PhotoID() kernel.UUID {
	return c.photoID
}

// Caption returns the optional photo caption.
func (c AddPhotoCommand) Caption() string {
	return c.caption
}

// ContentType returns the MIME type of the image payload.
func (c AddPhotoCommand) ContentType() string {
	return c.contentType
}

// Data returns the raw image bytes.
func (c AddPhotoCommand) Data() []byte {
	return c.data
}

// CapturedAt returns when the photo was taken.
func (c AddPhotoCommand) CapturedAt() time.Time {
	return c.capturedAt
}

func (c *AddPhotoCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddPhotoCommand) setPhotoID(photoID kernel.UUID) error {
	if err := photoID.Validate(); err != nil {
		return err
	}

	c.photoID = photoID
	return nil
}

func (c *AddPhotoCommand) setContentType(contentType string) error {
	if contentType == "" {
		return ErrContentTypeIsRequired
	}

	c.contentType = contentType
	return nil
}

func (c *AddPhotoCommand) setData(data []byte) error {
	if len(data) == 0 {
		return ErrPhotoDataIsRequired
	}

	c.data = data
	return nil
}

func (c *AddPhotoCommand) setCapturedAt(capturedAt time.Time) error {
	if capturedAt.IsZero() {
		return ErrCapturedAtIsRequired
	}

	c.capturedAt = capturedAt
	return nil
}
