package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrStartOrderCommandIsNotConstructed = errors.New(
		"StartOrderCommand must be created via NewStartOrderCommand constructor",
	)
	ErrTechnicianIDIsRequired = errors.New("technician ID is required")
)

// StartOrderCommand represents a technician's request to begin executing an
// order in the field. Starting records the check-in location, so the command
// identifies the technician whose position is to be captured.
//
// Example:
//
//	cmd, err := NewStartOrderCommand(orderID, "tech-042")
//	if err != nil {
//	    return fmt.Errorf("invalid start request: %w", err)
//	}
//
//	handler := NewStartOrderCommandHandler(uowFactory, locator, drafts, scheduler)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start order: %w", err)
//	}
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	technicianID string

	guard guard.ConstructorGuard
}

// NewStartOrderCommand creates a command to start executing an order.
// Validates that the order ID is valid and the technician ID is not empty.
func NewStartOrderCommand(orderID kernel.UUID, technicianID string) (StartOrderCommand, error) {
	cmd := StartOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTechnicianID(technicianID),
	); err != nil {
		return StartOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartOrderCommandIsNotConstructed if validation fails.
func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// OrderID returns the order to start.
func (c StartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TechnicianID returns the technician whose location is captured as check-in.
func (c StartOrderCommand) TechnicianID() string {
	return c.technicianID
}

func (c *StartOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartOrderCommand) setTechnicianID(technicianID string) error {
	if technicianID == "" {
		return ErrTechnicianIDIsRequired
	}

	c.technicianID = technicianID
	return nil
}
