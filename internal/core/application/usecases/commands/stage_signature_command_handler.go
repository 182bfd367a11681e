package commands

import (
	"context"

	"fieldservice/internal/core/application/draft"
)

// StageSignatureCommandHandler handles staging an in-progress signature
// drawing on an order's draft. The drawing replaces any earlier staged one
// and is not persisted; it is consumed when the sign-off is confirmed.
type StageSignatureCommandHandler struct {
	uowFactory OrderUoWFactory
	drafts     *draft.Store
}

// NewStageSignatureCommandHandler creates a handler for signature staging.
// The unit of work factory is only used to seed a draft on first access.
func NewStageSignatureCommandHandler(uowFactory OrderUoWFactory,
	drafts *draft.Store) StageSignatureCommandHandler {
	return StageSignatureCommandHandler{
		uowFactory: uowFactory,
		drafts:     drafts,
	}
}

// Handle processes the signature staging command.
func (h *StageSignatureCommandHandler) Handle(ctx context.Context, cmd StageSignatureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := ensureDraft(ctx, h.drafts, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	d.StageSignature(cmd.Raster())
	return nil
}
