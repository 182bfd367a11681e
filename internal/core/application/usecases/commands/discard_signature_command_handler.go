package commands

import (
	"context"

	"fieldservice/internal/core/application/draft"
)

// DiscardSignatureCommandHandler handles throwing away a staged signature
// drawing. Discarding is purely in-memory; when no draft exists for the
// order there is nothing staged and the command is a no-op.
type DiscardSignatureCommandHandler struct {
	drafts *draft.Store
}

// NewDiscardSignatureCommandHandler creates a handler for discarding a
// staged signature drawing.
func NewDiscardSignatureCommandHandler(drafts *draft.Store) DiscardSignatureCommandHandler {
	return DiscardSignatureCommandHandler{
		drafts: drafts,
	}
}

// Handle processes the discard command.
func (h *DiscardSignatureCommandHandler) Handle(_ context.Context, cmd DiscardSignatureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if d, ok := h.drafts.Get(cmd.OrderID()); ok {
		d.ClearSignature()
	}

	return nil
}
