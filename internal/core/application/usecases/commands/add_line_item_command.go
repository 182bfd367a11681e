package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/guard"
)

var ErrAddLineItemCommandIsNotConstructed = errors.New(
	"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
)

// AddLineItemCommand represents adding a billable product or service to an
// order's draft ledger. Item validity (positive quantity, non-negative
// price, non-empty name) is enforced by the line item constructor invoked
// here, so an invalid item never reaches the draft.
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	item    order.LineItem

	guard guard.ConstructorGuard
}

// NewAddLineItemCommand creates a command to add a ledger item.
// The sourceID links the item to the catalog record it was picked from and
// may be nil for ad-hoc items.
func NewAddLineItemCommand(orderID kernel.UUID, itemID kernel.UUID, kind order.ItemKind,
	name string, quantity int, unitPrice float64, sourceID *kernel.UUID) (AddLineItemCommand, error) {
	cmd := AddLineItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AddLineItemCommand{}, err
	}

	item, err := order.NewLineItem(itemID, kind, name, quantity, unitPrice, sourceID)
	if err != nil {
		return AddLineItemCommand{}, err
	}
	cmd.item = item

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddLineItemCommandIsNotConstructed if validation fails.
func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

// OrderID returns the order whose ledger is being edited.
func (c AddLineItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Item returns the validated line item to add.
func (c AddLineItemCommand) Item() order.LineItem {
	return c.item
}

func (c *AddLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
