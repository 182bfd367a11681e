package commands

import (
	"context"

	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
)

// StageServiceNotesCommandHandler handles notes edits.
// The edit lands on the in-memory draft and arms the auto-save debounce;
// nothing is written to the database synchronously, so typing stays cheap.
type StageServiceNotesCommandHandler struct {
	uowFactory OrderUoWFactory
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
}

// NewStageServiceNotesCommandHandler creates a handler for notes edits.
// The unit of work factory is only used to seed a draft on first access.
func NewStageServiceNotesCommandHandler(uowFactory OrderUoWFactory, drafts *draft.Store,
	scheduler *autosave.Scheduler) StageServiceNotesCommandHandler {
	return StageServiceNotesCommandHandler{
		uowFactory: uowFactory,
		drafts:     drafts,
		scheduler:  scheduler,
	}
}

// Handle processes the notes edit.
// An edit older than the draft's current notes is dropped without
// rescheduling the flush.
func (h *StageServiceNotesCommandHandler) Handle(ctx context.Context, cmd StageServiceNotesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := ensureDraft(ctx, h.drafts, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	if d.StageNotes(cmd.Notes(), cmd.EditedAt()) {
		h.scheduler.Schedule(cmd.OrderID())
	}

	return nil
}
