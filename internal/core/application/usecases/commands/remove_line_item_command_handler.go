package commands

import (
	"context"

	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
)

// RemoveLineItemCommandHandler handles removing items from the draft ledger.
type RemoveLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
}

// NewRemoveLineItemCommandHandler creates a handler for ledger removals.
func NewRemoveLineItemCommandHandler(uowFactory OrderUoWFactory, drafts *draft.Store,
	scheduler *autosave.Scheduler) RemoveLineItemCommandHandler {
	return RemoveLineItemCommandHandler{
		uowFactory: uowFactory,
		drafts:     drafts,
		scheduler:  scheduler,
	}
}

// Handle processes the ledger removal.
// Returns errs.ErrObjectNotFound when the item is not on the draft.
func (h *RemoveLineItemCommandHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := ensureDraft(ctx, h.drafts, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = d.Remove(cmd.ItemID()); err != nil {
		return err
	}

	h.scheduler.Schedule(cmd.OrderID())
	return nil
}
