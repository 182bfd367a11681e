package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrStageSignatureCommandIsNotConstructed = errors.New(
		"StageSignatureCommand must be created via NewStageSignatureCommand constructor",
	)
	ErrSignatureDataIsRequired = errors.New("signature data is required")
)

// StageSignatureCommand represents an in-progress signature drawing staged on
// an order's draft. The raster is the PNG exported by the signature pad; it
// stays in memory until the sign-off is confirmed or discarded.
type StageSignatureCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	raster  []byte

	guard guard.ConstructorGuard
}

// NewStageSignatureCommand creates a command to stage a signature drawing.
func NewStageSignatureCommand(orderID kernel.UUID, raster []byte) (StageSignatureCommand, error) {
	cmd := StageSignatureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRaster(raster),
	); err != nil {
		return StageSignatureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStageSignatureCommandIsNotConstructed if validation fails.
func (c StageSignatureCommand) Validate() error {
	return c.guard.Validate(ErrStageSignatureCommandIsNotConstructed)
}

// OrderID returns the order whose signature is being drawn.
func (c StageSignatureCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Raster returns the signature PNG bytes.
func (c StageSignatureCommand) Raster() []byte {
	return c.raster
}

func (c *StageSignatureCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StageSignatureCommand) setRaster(raster []byte) error {
	if len(raster) == 0 {
		return ErrSignatureDataIsRequired
	}

	c.raster = raster
	return nil
}
