package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrRemoveLineItemCommandIsNotConstructed = errors.New(
	"RemoveLineItemCommand must be created via NewRemoveLineItemCommand constructor",
)

// RemoveLineItemCommand represents removing an item from an order's draft
// ledger.
type RemoveLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLineItemCommand creates a command to remove a ledger item.
func NewRemoveLineItemCommand(orderID kernel.UUID, itemID kernel.UUID) (RemoveLineItemCommand, error) {
	cmd := RemoveLineItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return RemoveLineItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveLineItemCommandIsNotConstructed if validation fails.
func (c RemoveLineItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineItemCommandIsNotConstructed)
}

// OrderID returns the order whose ledger is being edited.
func (c RemoveLineItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the ledger item to remove.
func (c RemoveLineItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *RemoveLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveLineItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
