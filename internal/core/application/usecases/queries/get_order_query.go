package queries

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full execution detail of a single order:
// status, check events, evidence photos, notes, the line-item ledger, the
// signature, and the derived value.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's execution detail.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GeoEventResponse is a recorded check-in or check-out.
type GeoEventResponse struct {
	At        time.Time
	Latitude  float64
	Longitude float64
}

// PhotoResponse is one evidence photo reference.
type PhotoResponse struct {
	ID         string
	URL        string
	Caption    string
	CapturedAt time.Time
}

// LineItemResponse is one billable ledger entry with its derived total.
type LineItemResponse struct {
	ID        string
	Kind      string
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
	SourceID  string
}

// GetOrderQueryResponse is the full execution detail of one order.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	Status            string
	Priority          string
	CheckIn           *GeoEventResponse
	CheckOut          *GeoEventResponse
	Photos            []PhotoResponse
	ServiceNotes      string
	LineItems         []LineItemResponse
	CustomerSignature string
	Value             float64
	CompletedAt       *time.Time
}
