package commands

import (
	"context"

	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
)

// CompleteOrderCommandHandler handles the business logic for completing an
// order. Completion is the guarded transition of the workflow: it verifies
// the evidence checklist, captures the check-out location, and persists the
// final state atomically.
//
// The checklist is evaluated twice. A preflight pass runs before the
// location fix so the technician sees every unmet condition without being
// prompted for their position; the aggregate re-checks inside the
// transaction, so a concurrent edit can never complete an order that no
// longer qualifies.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locator    ports.Locator
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, locator ports.Locator,
	drafts *draft.Store, scheduler *autosave.Scheduler) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		locator:    locator,
		drafts:     drafts,
		scheduler:  scheduler,
	}
}

// Handle processes the completion command.
// Returns *order.CompletionError carrying every unmet condition when the
// order does not qualify; completing an already-completed order is a no-op.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.scheduler.Cancel(cmd.OrderID())

	d, hasDraft := h.drafts.Get(cmd.OrderID())
	var draftNotes string
	var draftItems []order.LineItem
	if hasDraft {
		draftNotes, draftItems = d.Snapshot()
	}

	done, err := h.preflight(ctx, cmd, hasDraft, draftNotes, draftItems)
	if err != nil || done {
		return err
	}

	checkOut, err := h.locator.Capture(ctx, cmd.TechnicianID())
	if err != nil {
		return err
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

	if err = aggregate.Complete(checkOut); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.drafts.Remove(cmd.OrderID())

	return nil
}

// preflight verifies the checklist against the current state plus the draft,
// before any location fix is requested. The bool result reports that the
// order is already completed and the command is a no-op.
func (h *CompleteOrderCommandHandler) preflight(ctx context.Context, cmd CompleteOrderCommand,
	hasDraft bool, draftNotes string, draftItems []order.LineItem) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if aggregate.Status() == order.Completed {
		return true, nil
	}

	if hasDraft {
		aggregate.SetServiceNotes(draftNotes)
		if err = aggregate.ReplaceLineItems(draftItems); err != nil {
			return false, err
		}
	}

	if unmet := aggregate.CompletionChecklist(); len(unmet) > 0 {
		return false, order.NewCompletionError(unmet)
	}

	return false, nil
}
