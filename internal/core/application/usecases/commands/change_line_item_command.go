package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrChangeLineItemCommandIsNotConstructed = errors.New(
		"ChangeLineItemCommand must be created via NewChangeLineItemCommand constructor",
	)
	ErrNoChangesRequested   = errors.New("at least one of quantity or unit price must be set")
	ErrPriceChangeOnRemoval = errors.New("a unit price cannot accompany a removing quantity")
)

// ChangeLineItemCommand represents changing the quantity or unit price of a
// ledger item on an order's draft. Either field may be omitted (nil) to
// leave it unchanged; a quantity of zero or below requests removal.
type ChangeLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemID    kernel.UUID
	quantity  *int
	unitPrice *float64

	guard guard.ConstructorGuard
}

// NewChangeLineItemCommand creates a command to change a ledger item.
// At least one of quantity or unitPrice must be provided.
func NewChangeLineItemCommand(orderID kernel.UUID, itemID kernel.UUID,
	quantity *int, unitPrice *float64) (ChangeLineItemCommand, error) {
	cmd := ChangeLineItemCommand{
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if quantity == nil && unitPrice == nil {
		return ChangeLineItemCommand{}, ErrNoChangesRequested
	}

	// A quantity of zero or below removes the item, so a price change sent
	// alongside it would be silently lost. Reject the combination instead.
	if quantity != nil && *quantity <= 0 && unitPrice != nil {
		return ChangeLineItemCommand{}, ErrPriceChangeOnRemoval
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return ChangeLineItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeLineItemCommandIsNotConstructed if validation fails.
func (c ChangeLineItemCommand) Validate() error {
	return c.guard.Validate(ErrChangeLineItemCommandIsNotConstructed)
}

// OrderID returns the order whose ledger is being edited.
func (c ChangeLineItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the ledger item to change.
func (c ChangeLineItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the new quantity, or nil if unchanged.
func (c ChangeLineItemCommand) Quantity() *int {
	return c.quantity
}

// UnitPrice returns the new unit price, or nil if unchanged.
func (c ChangeLineItemCommand) UnitPrice() *float64 {
	return c.unitPrice
}

func (c *ChangeLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeLineItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
