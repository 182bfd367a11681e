package commands

import (
	"context"
	"errors"

	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
)

// ErrOrderNotEditable is returned when a draft edit targets an order that has
// already reached a terminal status.
var ErrOrderNotEditable = errors.New("order is completed or cancelled and can no longer be edited")

// ensureDraft returns the live draft for the order, seeding a fresh one from
// persisted state on first access. Seeding reads through a short transaction
// so the draft starts from a consistent view of notes and line items.
func ensureDraft(ctx context.Context, drafts *draft.Store, uowFactory OrderUoWFactory,
	orderID kernel.UUID) (*draft.Draft, error) {
	d, created := drafts.GetOrCreate(orderID)
	if !created {
		return d, nil
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		drafts.Remove(orderID)
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		drafts.Remove(orderID)
		return nil, err
	}

	if aggregate.Status() == order.Completed || aggregate.Status() == order.Cancelled {
		drafts.Remove(orderID)
		return nil, ErrOrderNotEditable
	}

	d.Seed(aggregate.ServiceNotes(), aggregate.LineItems())
	return d, nil
}
