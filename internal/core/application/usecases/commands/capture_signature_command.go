package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrCaptureSignatureCommandIsNotConstructed = errors.New(
	"CaptureSignatureCommand must be created via NewCaptureSignatureCommand constructor",
)

// CaptureSignatureCommand represents a request to record the customer's
// sign-off on an order. The raster is the PNG produced by the signature pad;
// it may be omitted, in which case the handler falls back to a drawing
// previously staged on the order's draft.
type CaptureSignatureCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	raster  []byte

	guard guard.ConstructorGuard
}

// NewCaptureSignatureCommand creates a command to capture a signature.
// A nil raster is valid and means "use the staged drawing".
func NewCaptureSignatureCommand(orderID kernel.UUID, raster []byte) (CaptureSignatureCommand, error) {
	cmd := CaptureSignatureCommand{
		raster: raster,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CaptureSignatureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCaptureSignatureCommandIsNotConstructed if validation fails.
func (c CaptureSignatureCommand) Validate() error {
	return c.guard.Validate(ErrCaptureSignatureCommandIsNotConstructed)
}

// OrderID returns the order being signed off.
func (c CaptureSignatureCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Raster returns the signature PNG bytes, or nil when the staged drawing
// should be used.
func (c CaptureSignatureCommand) Raster() []byte {
	return c.raster
}

func (c *CaptureSignatureCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
