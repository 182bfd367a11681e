package order

import (
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when attempting to use an improperly
// initialized LineItem. LineItems must be created via NewLineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// ItemKind distinguishes billable products from billable services.
type ItemKind int

const (
	// ItemKindUnknown represents an invalid or undefined kind.
	ItemKindUnknown ItemKind = iota

	// ItemKindProduct is a physical product taken from inventory.
	ItemKindProduct

	// ItemKindService is labor or another non-stock service.
	ItemKindService
)

// Validate checks if the ItemKind value is valid.
func (k ItemKind) Validate() error {
	if k != ItemKindProduct && k != ItemKindService {
		return errs.NewValueIsInvalidErrorWithCause("item kind is invalid", fmt.Errorf("%d is not a valid item kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
func (k ItemKind) String() string {
	switch k {
	case ItemKindProduct:
		return "Product"
	case ItemKindService:
		return "Service"
	default:
		return "Unknown"
	}
}

// LineItem is a billable item (quantity x unit price) added to a service order
// during field execution. The line total is always derived from quantity and
// unit price; it is never stored or trusted from persistence.
//
// LineItem is an immutable value object: quantity and price changes produce a
// new LineItem via WithQuantity/WithUnitPrice. The zero value is invalid and
// fails validation - use the constructor to create instances.
type LineItem struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	kind      ItemKind
	name      string
	quantity  int
	unitPrice float64
	sourceID  *kernel.UUID
	guard     guard.ConstructorGuard
}

// NewLineItem creates a LineItem with validation.
//
// Parameters:
//   - id: Unique identifier of the line item (must be a valid UUID)
//   - kind: ItemKindProduct or ItemKindService
//   - name: Display name (must be non-empty)
//   - quantity: Billed quantity (must be positive; a non-positive quantity
//     means removal and is not a valid persisted state)
//   - unitPrice: Price per unit (must not be negative)
//   - sourceID: Optional reference to the catalog/inventory record the item
//     was picked from (nil for ad-hoc items)
//
// Returns:
//   - LineItem: A valid line item instance
//   - error: Validation error if any parameter is invalid
func NewLineItem(
	id kernel.UUID,
	kind ItemKind,
	name string,
	quantity int,
	unitPrice float64,
	sourceID *kernel.UUID,
) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setKind(kind),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setSourceID(sourceID),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks if the LineItem was properly constructed using the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item's unique identifier.
func (i LineItem) ID() kernel.UUID {
	return i.id
}

// Kind returns whether the item is a product or a service.
func (i LineItem) Kind() ItemKind {
	return i.kind
}

// Name returns the item's display name.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns the billed quantity. Always positive.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i LineItem) UnitPrice() float64 {
	return i.unitPrice
}

// SourceID returns the catalog/inventory record the item was picked from,
// or nil for ad-hoc items.
func (i LineItem) SourceID() *kernel.UUID {
	return i.sourceID
}

// Total returns the derived line total, quantity x unit price.
// It is recomputed on every call and never cached or persisted.
func (i LineItem) Total() float64 {
	return float64(i.quantity) * i.unitPrice
}

// WithQuantity returns a copy of the item with the quantity replaced.
// The quantity must be positive; callers treat non-positive quantities as
// removal before reaching this method.
func (i LineItem) WithQuantity(quantity int) (LineItem, error) {
	if err := i.Validate(); err != nil {
		return LineItem{}, err
	}

	updated := i
	if err := updated.setQuantity(quantity); err != nil {
		return LineItem{}, err
	}

	return updated, nil
}

// WithUnitPrice returns a copy of the item with the unit price replaced.
func (i LineItem) WithUnitPrice(unitPrice float64) (LineItem, error) {
	if err := i.Validate(); err != nil {
		return LineItem{}, err
	}

	updated := i
	if err := updated.setUnitPrice(unitPrice); err != nil {
		return LineItem{}, err
	}

	return updated, nil
}

// SumTotals returns the aggregate value of a line-item sequence: the sum of
// every item's derived total. An empty or nil sequence sums to zero.
func SumTotals(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Total()
	}
	return sum
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	i.id = id
	return nil
}

func (i *LineItem) setKind(kind ItemKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	i.kind = kind
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid",
			fmt.Errorf("%f is negative", unitPrice))
	}

	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setSourceID(sourceID *kernel.UUID) error {
	if sourceID == nil {
		return nil
	}

	if err := sourceID.Validate(); err != nil {
		return err
	}

	id := *sourceID
	i.sourceID = &id
	return nil
}
