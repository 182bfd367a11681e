package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities,
// plus the partial-field draft write used by the auto-save scheduler.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	//
	// Update writes the whole execution state (status, check events, photos,
	// notes, items, signature, derived value) as one logical update; guarded
	// transitions rely on that atomicity.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUncompleted retrieves all orders that are neither completed nor
	// cancelled. Used for the technician's active-work backlog.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)

	// SaveExecutionDraft overwrites only the draft-editable fields of an
	// order: service notes, line items, and the derived value. It is the
	// coalesced auto-save write; payloads are full-field overwrites, so
	// re-sending the same payload is safe.
	SaveExecutionDraft(ctx context.Context, id kernel.UUID, notes string, items []order.LineItem) error
}
