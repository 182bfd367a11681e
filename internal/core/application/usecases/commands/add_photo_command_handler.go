package commands

import (
	"context"
	"fmt"

	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
)

// AddPhotoCommandHandler handles attaching evidence photos to orders.
// Uploads the image to blob storage first, then appends the resulting URL to
// the aggregate. Photos are append-only evidence; a failed upload leaves the
// order untouched, while a failed aggregate write leaves at worst an
// unreferenced blob.
type AddPhotoCommandHandler struct {
	uowFactory OrderUoWFactory
	blobs      ports.BlobStorage
}

// NewAddPhotoCommandHandler creates a handler for evidence photo uploads.
func NewAddPhotoCommandHandler(uowFactory OrderUoWFactory, blobs ports.BlobStorage) AddPhotoCommandHandler {
	return AddPhotoCommandHandler{
		uowFactory: uowFactory,
		blobs:      blobs,
	}
}

// Handle processes the photo attachment command.
func (h *AddPhotoCommandHandler) Handle(ctx context.Context, cmd AddPhotoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	path := fmt.Sprintf("service-photos/%s/%s", cmd.OrderID(), cmd.PhotoID())
	url, err := h.blobs.Upload(ctx, path, cmd.ContentType(), cmd.Data())
	if err != nil {
		return err
	}

	photo, err := order.NewPhoto(cmd.PhotoID(), url, cmd.Caption(), cmd.CapturedAt())
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

	if err = aggregate.AttachPhoto(photo); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
