package commands

import (
	"context"
	"fmt"

	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// signatureContentType is the format the signature pad exports.
const signatureContentType = "image/png"

// CaptureSignatureCommandHandler handles recording the customer's sign-off.
// Uploads the signature raster to blob storage and stores the resulting URL
// on the aggregate. Once persisted, the staged drawing on the draft is
// discarded; a signature on the order itself is never cleared.
type CaptureSignatureCommandHandler struct {
	uowFactory OrderUoWFactory
	blobs      ports.BlobStorage
	drafts     *draft.Store
}

// NewCaptureSignatureCommandHandler creates a handler for signature capture.
func NewCaptureSignatureCommandHandler(uowFactory OrderUoWFactory, blobs ports.BlobStorage,
	drafts *draft.Store) CaptureSignatureCommandHandler {
	return CaptureSignatureCommandHandler{
		uowFactory: uowFactory,
		blobs:      blobs,
		drafts:     drafts,
	}
}

// Handle processes the signature capture command.
// Uses the command's raster when present, otherwise the drawing staged on
// the order's draft; with neither, the command fails as a required-value
// error.
func (h *CaptureSignatureCommandHandler) Handle(ctx context.Context, cmd CaptureSignatureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	raster := cmd.Raster()
	if len(raster) == 0 {
		if d, ok := h.drafts.Get(cmd.OrderID()); ok {
			raster = d.StagedSignature()
		}
	}
	if len(raster) == 0 {
		return errs.NewValueIsRequiredError("signature")
	}

	path := fmt.Sprintf("signatures/%s.png", cmd.OrderID())
	url, err := h.blobs.Upload(ctx, path, signatureContentType, raster)
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

	if err = aggregate.SetCustomerSignature(url); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if d, ok := h.drafts.Get(cmd.OrderID()); ok {
		d.ClearSignature()
	}

	return nil
}
