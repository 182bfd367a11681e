package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents a technician's request to finish an order.
// Completion records the check-out location, so the command identifies the
// technician whose position is to be captured.
//
// Example:
//
//	cmd, err := NewCompleteOrderCommand(orderID, "tech-042")
//	if err != nil {
//	    return fmt.Errorf("invalid completion request: %w", err)
//	}
//
//	handler := NewCompleteOrderCommandHandler(uowFactory, locator, drafts, scheduler)
//	err = handler.Handle(ctx, cmd)
//	var unmet *order.CompletionError
//	if errors.As(err, &unmet) {
//	    // show the technician everything still missing
//	}
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	technicianID string

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to complete an order.
// Validates that the order ID is valid and the technician ID is not empty.
func NewCompleteOrderCommand(orderID kernel.UUID, technicianID string) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTechnicianID(technicianID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteOrderCommandIsNotConstructed if validation fails.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to complete.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TechnicianID returns the technician whose location is captured as check-out.
func (c CompleteOrderCommand) TechnicianID() string {
	return c.technicianID
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setTechnicianID(technicianID string) error {
	if technicianID == "" {
		return ErrTechnicianIDIsRequired
	}

	c.technicianID = technicianID
	return nil
}
