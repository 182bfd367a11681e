package commands

import (
	"context"

	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
)

// ChangeLineItemCommandHandler handles quantity and price changes on the
// draft ledger. Quantity changes to zero or below remove the item; every
// change recomputes the item total and the draft value before the auto-save
// flush can observe it.
type ChangeLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
}

// NewChangeLineItemCommandHandler creates a handler for ledger changes.
func NewChangeLineItemCommandHandler(uowFactory OrderUoWFactory, drafts *draft.Store,
	scheduler *autosave.Scheduler) ChangeLineItemCommandHandler {
	return ChangeLineItemCommandHandler{
		uowFactory: uowFactory,
		drafts:     drafts,
		scheduler:  scheduler,
	}
}

// Handle processes the ledger change.
// Returns errs.ErrObjectNotFound when the item is not on the draft.
func (h *ChangeLineItemCommandHandler) Handle(ctx context.Context, cmd ChangeLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := ensureDraft(ctx, h.drafts, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	if quantity := cmd.Quantity(); quantity != nil {
		if err = d.UpdateQuantity(cmd.ItemID(), *quantity); err != nil {
			return err
		}

		// A removing quantity never carries a price change; the
		// constructor rejects that combination.
		if *quantity <= 0 {
			h.scheduler.Schedule(cmd.OrderID())
			return nil
		}
	}

	if unitPrice := cmd.UnitPrice(); unitPrice != nil {
		if err = d.UpdatePrice(cmd.ItemID(), *unitPrice); err != nil {
			return err
		}
	}

	h.scheduler.Schedule(cmd.OrderID())
	return nil
}
