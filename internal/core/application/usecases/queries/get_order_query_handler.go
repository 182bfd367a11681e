package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order's execution detail from the
// database, decoding the JSON evidence and ledger columns into flat
// response models.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// photoDoc mirrors the JSON shape of one evidence photo in storage.
type photoDoc struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	CapturedAt time.Time `json:"capturedAt"`
}

// lineItemDoc mirrors the JSON shape of one ledger entry in storage.
type lineItemDoc struct {
	ID        string  `json:"id"`
	Kind      int     `json:"kind"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
	SourceID  string  `json:"sourceId,omitempty"`
}

// Handle executes the query for one order.
// Returns errs.ErrObjectNotFound when no order has the given ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			priority,
			check_in_at,
			check_in_latitude,
			check_in_longitude,
			check_out_at,
			check_out_latitude,
			check_out_longitude,
			evidence_photos,
			service_notes,
			line_items,
			customer_signature,
			value,
			completed_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                uuid.UUID
		status, priority  int
		checkInAt         sql.NullTime
		checkInLatitude   sql.NullFloat64
		checkInLongitude  sql.NullFloat64
		checkOutAt        sql.NullTime
		checkOutLatitude  sql.NullFloat64
		checkOutLongitude sql.NullFloat64
		photosJSON        []byte
		serviceNotes      string
		itemsJSON         []byte
		customerSignature string
		value             float64
		completedAt       sql.NullTime
	)

	err := row.Scan(
		&id,
		&status,
		&priority,
		&checkInAt,
		&checkInLatitude,
		&checkInLongitude,
		&checkOutAt,
		&checkOutLatitude,
		&checkOutLongitude,
		&photosJSON,
		&serviceNotes,
		&itemsJSON,
		&customerSignature,
		&value,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		ID:                orderID,
		Status:            order.Status(status).String(),
		Priority:          order.Priority(priority).String(),
		CheckIn:           geoEventResponse(checkInAt, checkInLatitude, checkInLongitude),
		CheckOut:          geoEventResponse(checkOutAt, checkOutLatitude, checkOutLongitude),
		ServiceNotes:      serviceNotes,
		CustomerSignature: customerSignature,
		Value:             value,
	}

	if completedAt.Valid {
		at := completedAt.Time
		response.CompletedAt = &at
	}

	if response.Photos, err = decodePhotos(photosJSON); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.LineItems, err = decodeLineItems(itemsJSON); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func geoEventResponse(at sql.NullTime, latitude, longitude sql.NullFloat64) *GeoEventResponse {
	if !at.Valid || !latitude.Valid || !longitude.Valid {
		return nil
	}

	return &GeoEventResponse{
		At:        at.Time,
		Latitude:  latitude.Float64,
		Longitude: longitude.Float64,
	}
}

func decodePhotos(raw []byte) ([]PhotoResponse, error) {
	photos := make([]PhotoResponse, 0)
	if len(raw) == 0 {
		return photos, nil
	}

	var docs []photoDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		photos = append(photos, PhotoResponse{
			ID:         doc.ID,
			URL:        doc.URL,
			Caption:    doc.Caption,
			CapturedAt: doc.CapturedAt,
		})
	}
	return photos, nil
}

func decodeLineItems(raw []byte) ([]LineItemResponse, error) {
	items := make([]LineItemResponse, 0)
	if len(raw) == 0 {
		return items, nil
	}

	var docs []lineItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		items = append(items, LineItemResponse{
			ID:        doc.ID,
			Kind:      order.ItemKind(doc.Kind).String(),
			Name:      doc.Name,
			Quantity:  doc.Quantity,
			UnitPrice: doc.UnitPrice,
			Total:     doc.Total,
			SourceID:  doc.SourceID,
		})
	}
	return items, nil
}
