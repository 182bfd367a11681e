package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrDiscardSignatureCommandIsNotConstructed = errors.New(
	"DiscardSignatureCommand must be created via NewDiscardSignatureCommand constructor",
)

// DiscardSignatureCommand represents a request to throw away the signature
// drawing staged on an order's draft. A signature already persisted on the
// order is never affected.
type DiscardSignatureCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDiscardSignatureCommand creates a command to discard a staged drawing.
func NewDiscardSignatureCommand(orderID kernel.UUID) (DiscardSignatureCommand, error) {
	cmd := DiscardSignatureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DiscardSignatureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDiscardSignatureCommandIsNotConstructed if validation fails.
func (c DiscardSignatureCommand) Validate() error {
	return c.guard.Validate(ErrDiscardSignatureCommandIsNotConstructed)
}

// OrderID returns the order whose staged drawing is discarded.
func (c DiscardSignatureCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DiscardSignatureCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
