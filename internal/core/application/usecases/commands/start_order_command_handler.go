package commands

import (
	"context"

	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
)

// StartOrderCommandHandler handles the business logic for starting an order.
// Captures the technician's location as the check-in event, transitions the
// order to in-progress, and absorbs any staged draft edits into the same
// transactional write.
//
// The location is acquired before the transaction opens: a denied or failed
// location fix must abort the start without touching the order.
type StartOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locator    ports.Locator
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
}

// NewStartOrderCommandHandler creates a handler for order start operations.
func NewStartOrderCommandHandler(uowFactory OrderUoWFactory, locator ports.Locator,
	drafts *draft.Store, scheduler *autosave.Scheduler) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		locator:    locator,
		drafts:     drafts,
		scheduler:  scheduler,
	}
}

// Handle processes the start command.
// Acquires a check-in location fix, cancels any pending auto-save so the
// draft cannot land after this write, and persists the transition together
// with the draft's notes and line items in one transaction.
func (h *StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	checkIn, err := h.locator.Capture(ctx, cmd.TechnicianID())
	if err != nil {
		return err
	}

	h.scheduler.Cancel(cmd.OrderID())

	d, hasDraft := h.drafts.Get(cmd.OrderID())
	var draftNotes string
	var draftItems []order.LineItem
	if hasDraft {
		draftNotes, draftItems = d.Snapshot()
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if hasDraft {
		aggregate.SetServiceNotes(draftNotes)
		if err = aggregate.ReplaceLineItems(draftItems); err != nil {
			return err
		}
	}

	if err = aggregate.Start(checkIn); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if hasDraft {
		d.MarkFlushed(draftNotes, draftItems)
	}

	return nil
}
