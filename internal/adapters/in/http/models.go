package http

import "time"

// Error is the common error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CompletionRejected is returned when an order does not qualify for
// completion. Unmet lists every failed condition; SignatureOnly tells the
// client the signature pad alone stands between the technician and
// completion.
type CompletionRejected struct {
	Code          int      `json:"code"`
	Message       string   `json:"message"`
	Unmet         []string `json:"unmet"`
	SignatureOnly bool     `json:"signatureOnly"`
}

// StartOrderRequest carries the technician whose position is recorded as
// check-in.
type StartOrderRequest struct {
	TechnicianID string `json:"technicianId"`
}

// CompleteOrderRequest carries the technician whose position is recorded as
// check-out.
type CompleteOrderRequest struct {
	TechnicianID string `json:"technicianId"`
}

// NotesRequest carries a full-text notes edit. EditedAt stamps the user
// action for last-write-wins resolution; a missing value defaults to the
// server's receive time.
type NotesRequest struct {
	Notes    string    `json:"notes"`
	EditedAt time.Time `json:"editedAt"`
}

// SignatureRequest carries the signature pad's PNG export, base64-encoded.
// An empty raster asks the server to use a previously staged drawing.
type SignatureRequest struct {
	Raster []byte `json:"raster"`
}

// AddLineItemRequest adds a billable item to the order's draft ledger.
// Kind is "product" or "service"; sourceId optionally links the item to the
// catalog record it was picked from.
type AddLineItemRequest struct {
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	SourceID  string  `json:"sourceId,omitempty"`
}

// ChangeLineItemRequest changes quantity or unit price of a ledger item.
// Omitted fields stay unchanged; a quantity of zero or below removes the
// item.
type ChangeLineItemRequest struct {
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

// LineItemCreated echoes the identifier assigned to a new ledger item.
type LineItemCreated struct {
	ID string `json:"id"`
}

// GeoEvent is a recorded check-in or check-out.
type GeoEvent struct {
	At        time.Time `json:"at"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// Photo is one evidence photo reference.
type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	CapturedAt time.Time `json:"capturedAt"`
}

// LineItem is one billable ledger entry.
type LineItem struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
	SourceID  string  `json:"sourceId,omitempty"`
}

// OrderSummary is one row of the active backlog.
type OrderSummary struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Priority string  `json:"priority"`
	Value    float64 `json:"value"`
}

// OrderDetail is the full execution state of one order.
type OrderDetail struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	CheckIn           *GeoEvent  `json:"checkIn,omitempty"`
	CheckOut          *GeoEvent  `json:"checkOut,omitempty"`
	Photos            []Photo    `json:"photos"`
	ServiceNotes      string     `json:"serviceNotes"`
	LineItems         []LineItem `json:"lineItems"`
	CustomerSignature string     `json:"customerSignature,omitempty"`
	Value             float64    `json:"value"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}
