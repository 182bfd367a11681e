package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrStageServiceNotesCommandIsNotConstructed = errors.New(
		"StageServiceNotesCommand must be created via NewStageServiceNotesCommand constructor",
	)
	ErrEditedAtIsRequired = errors.New("notes edit time is required")
)

// StageServiceNotesCommand represents a notes edit staged on an order's
// draft. The notes text may be empty: clearing the field is a legitimate
// edit. EditedAt timestamps the user action for last-write-wins resolution.
type StageServiceNotesCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	notes    string
	editedAt time.Time

	guard guard.ConstructorGuard
}

// NewStageServiceNotesCommand creates a command to stage a notes edit.
func NewStageServiceNotesCommand(orderID kernel.UUID, notes string,
	editedAt time.Time) (StageServiceNotesCommand, error) {
	cmd := StageServiceNotesCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEditedAt(editedAt),
	); err != nil {
		return StageServiceNotesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStageServiceNotesCommandIsNotConstructed if validation fails.
func (c StageServiceNotesCommand) Validate() error {
	return c.guard.Validate(ErrStageServiceNotesCommandIsNotConstructed)
}

// OrderID returns the order whose notes are being edited.
func (c StageServiceNotesCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Notes returns the full notes text to stage.
func (c StageServiceNotesCommand) Notes() string {
	return c.notes
}

// EditedAt returns when the user made the edit.
func (c StageServiceNotesCommand) EditedAt() time.Time {
	return c.editedAt
}

func (c *StageServiceNotesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StageServiceNotesCommand) setEditedAt(editedAt time.Time) error {
	if editedAt.IsZero() {
		return ErrEditedAtIsRequired
	}

	c.editedAt = editedAt
	return nil
}
