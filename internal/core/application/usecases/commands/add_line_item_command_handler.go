package commands

import (
	"context"

	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
)

// AddLineItemCommandHandler handles adding items to the draft ledger.
// The mutation is local and synchronous; persistence is left to the
// auto-save debounce so a burst of additions costs one write.
type AddLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
}

// NewAddLineItemCommandHandler creates a handler for ledger additions.
func NewAddLineItemCommandHandler(uowFactory OrderUoWFactory, drafts *draft.Store,
	scheduler *autosave.Scheduler) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
		drafts:     drafts,
		scheduler:  scheduler,
	}
}

// Handle processes the ledger addition.
func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := ensureDraft(ctx, h.drafts, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = d.AddItem(cmd.Item()); err != nil {
		return err
	}

	h.scheduler.Schedule(cmd.OrderID())
	return nil
}
