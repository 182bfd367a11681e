package order

import (
	"errors"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrCheckInAlreadyRecorded is returned when Start is attempted on an order
	// that already carries a check-in event. An existing check-in is never
	// overwritten.
	ErrCheckInAlreadyRecorded = errors.New("check-in has already been recorded and cannot be overwritten")

	// ErrCheckOutWithoutCheckIn is returned when restoring an order whose
	// persisted state claims a check-out without a check-in.
	ErrCheckOutWithoutCheckIn = errors.New("check-out cannot be set while check-in is unset")
)

// Order represents a service order in the field execution workflow. It is the
// aggregate root that manages the order's lifecycle from creation through
// check-in to evidence-gated completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and priority
//   - Status transitions follow the execution workflow: New/Pending -> InProgress -> Completed
//   - checkOut may be set only if checkIn is already set
//   - Completed implies checkIn and checkOut set, at least one evidence photo,
//     non-blank service notes, and a captured customer signature
//   - The monetary value is always the live sum of line-item totals; it is
//     derived and never independently written
//   - Evidence photos are append-only within an execution pass
//   - A failed transition leaves all captured evidence and items intact
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// status represents the current state in the execution workflow
	status Status

	// priority is the ordinal severity, informational to this workflow
	priority Priority

	// checkIn is the geolocation-stamped start event (nil until started)
	checkIn *GeoEvent

	// checkOut is the geolocation-stamped completion event (nil until completed)
	checkOut *GeoEvent

	// evidencePhotos is the append-only sequence of captured evidence photos
	evidencePhotos []Photo

	// serviceNotes is the technician's free-text report, last-write-wins
	serviceNotes string

	// lineItems are the billable items added during execution
	lineItems []LineItem

	// customerSignature is the storage URL of the captured signature image
	// (empty until captured)
	customerSignature string

	// completedAt is set when the order reaches Completed
	completedAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in the New status. This is how the surrounding
// application registers an order for field execution; evidence, check events,
// items, and signature all start empty.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - priority: Ordinal severity (must be a valid Priority)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, priority Priority) (*Order, error) {
	order := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state. It revalidates
// every value object and the cross-field invariants (valid status, check-out
// only with check-in), so corrupted rows never produce a usable aggregate.
//
// The monetary value is intentionally not a parameter: it is derived from the
// restored line items and never trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	priority Priority,
	checkIn *GeoEvent,
	checkOut *GeoEvent,
	evidencePhotos []Photo,
	serviceNotes string,
	lineItems []LineItem,
	customerSignature string,
	completedAt *time.Time,
) (*Order, error) {
	order := &Order{
		serviceNotes:      serviceNotes,
		customerSignature: customerSignature,
		isConstructed:     true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStatus(status),
		order.setPriority(priority),
	); err != nil {
		return nil, err
	}

	if checkIn != nil {
		if err := checkIn.Validate(); err != nil {
			return nil, err
		}
		event := *checkIn
		order.checkIn = &event
	}

	if checkOut != nil {
		if order.checkIn == nil {
			return nil, ErrCheckOutWithoutCheckIn
		}
		if err := checkOut.Validate(); err != nil {
			return nil, err
		}
		event := *checkOut
		order.checkOut = &event
	}

	for _, photo := range evidencePhotos {
		if err := photo.Validate(); err != nil {
			return nil, err
		}
	}
	order.evidencePhotos = append([]Photo(nil), evidencePhotos...)

	if err := order.ReplaceLineItems(lineItems); err != nil {
		return nil, err
	}

	if completedAt != nil {
		at := *completedAt
		order.completedAt = &at
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the order's ordinal severity.
func (o *Order) Priority() Priority {
	return o.priority
}

// CheckIn returns the geolocation-stamped start event, or nil if the order
// has not been started.
func (o *Order) CheckIn() *GeoEvent {
	return o.checkIn
}

// CheckOut returns the geolocation-stamped completion event, or nil if the
// order has not been completed.
func (o *Order) CheckOut() *GeoEvent {
	return o.checkOut
}

// EvidencePhotos returns a copy of the captured evidence photos in capture order.
func (o *Order) EvidencePhotos() []Photo {
	return append([]Photo(nil), o.evidencePhotos...)
}

// ServiceNotes returns the technician's free-text report.
func (o *Order) ServiceNotes() string {
	return o.serviceNotes
}

// LineItems returns a copy of the billable line items.
func (o *Order) LineItems() []LineItem {
	return append([]LineItem(nil), o.lineItems...)
}

// CustomerSignature returns the storage URL of the captured signature image,
// or the empty string if no signature has been captured.
func (o *Order) CustomerSignature() string {
	return o.customerSignature
}

// CompletedAt returns when the order was completed, or nil if it has not been.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Value returns the order's derived monetary total: the live sum of every
// line item's quantity x unit price. It is recomputed on each call; no code
// path writes it independently.
func (o *Order) Value() float64 {
	return SumTotals(o.lineItems)
}

// Start begins field execution: it records the geolocation-stamped check-in
// and moves the order to InProgress.
//
// Business rules enforced:
//   - The order must be in New or Pending status
//   - An existing check-in is never overwritten
//
// A failed Start leaves the order untouched; the caller retries after fixing
// the reported problem (typically a failed location fix, which is detected
// before this method is reached).
func (o *Order) Start(checkIn GeoEvent) error {
	if err := checkIn.Validate(); err != nil {
		return err
	}

	if o.checkIn != nil {
		return ErrCheckInAlreadyRecorded
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.checkIn = &checkIn
	return nil
}

// CompletionChecklist evaluates every completion precondition against the
// order's current state and returns the full list of unmet conditions. The
// conditions are evaluated as a set, never short-circuited, so the caller
// sees everything still missing at once.
//
// An empty result means the order is ready to complete.
func (o *Order) CompletionChecklist() []UnmetCondition {
	var unmet []UnmetCondition

	if o.checkIn == nil {
		unmet = append(unmet, UnmetCheckIn)
	}
	if len(o.evidencePhotos) == 0 {
		unmet = append(unmet, UnmetEvidencePhotos)
	}
	if strings.TrimSpace(o.serviceNotes) == "" {
		unmet = append(unmet, UnmetServiceNotes)
	}
	if o.customerSignature == "" {
		unmet = append(unmet, UnmetCustomerSignature)
	}

	return unmet
}

// Complete finishes field execution: it verifies the completion checklist,
// records the geolocation-stamped check-out, stamps the completion time, and
// moves the order to Completed.
//
// Business rules enforced:
//   - Completing an already Completed order is an idempotent no-op success
//   - All checklist conditions (check-in, photos, notes, signature) must hold;
//     a CompletionError listing every unmet condition is returned otherwise
//   - The order must be InProgress
//
// A failed Complete leaves the order and all its captured evidence exactly as
// they were.
func (o *Order) Complete(checkOut GeoEvent) error {
	if o.status == Completed {
		return nil
	}

	if unmet := o.CompletionChecklist(); len(unmet) > 0 {
		return NewCompletionError(unmet)
	}

	if err := checkOut.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	completedAt := checkOut.OccurredAt()
	o.status = newStatus
	o.checkOut = &checkOut
	o.completedAt = &completedAt
	return nil
}

// AttachPhoto appends an evidence photo. Photos are append-only within this
// workflow: nothing here removes or reorders them.
func (o *Order) AttachPhoto(photo Photo) error {
	if err := photo.Validate(); err != nil {
		return err
	}

	o.evidencePhotos = append(o.evidencePhotos, photo)
	return nil
}

// SetServiceNotes overwrites the technician's report. Notes are free text
// with last-write-wins semantics; ordering of concurrent edits is resolved by
// the draft layer before reaching the aggregate.
func (o *Order) SetServiceNotes(notes string) {
	o.serviceNotes = notes
}

// ReplaceLineItems overwrites the billable line items with a validated copy
// of the given sequence. The derived value changes implicitly since it is
// always recomputed from the items.
func (o *Order) ReplaceLineItems(items []LineItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.lineItems = append([]LineItem(nil), items...)
	return nil
}

// SetCustomerSignature records the storage URL of a successfully uploaded
// signature image. The signature binds to the line-item set as it stands at
// capture time; later item edits do not invalidate it.
func (o *Order) SetCustomerSignature(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("customerSignature")
	}

	o.customerSignature = url
	return nil
}

// AwaitingApproval reports whether the order is in the budget-approval
// sub-flow: in-field items have been added but the customer has not signed
// yet. This is a derived view state, not a stored status.
func (o *Order) AwaitingApproval() bool {
	return o.status == InProgress && len(o.lineItems) > 0 && o.customerSignature == ""
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setStatus validates and sets the order's status.
// This is a private method used only during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setPriority validates and sets the order's priority.
// This is a private method used only during construction.
func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}
