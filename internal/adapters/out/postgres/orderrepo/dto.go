// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
//
// Scalar execution state maps to plain columns; the evidence photo list and
// the line-item ledger are stored as JSONB documents, since they are always
// read and written as part of the whole order.
package orderrepo

import (
	"encoding/json"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status            int       `gorm:"index"`
	Priority          int
	CheckIn           GeoEventDTO    `gorm:"embedded;embeddedPrefix:check_in_"`
	CheckOut          GeoEventDTO    `gorm:"embedded;embeddedPrefix:check_out_"`
	EvidencePhotos    datatypes.JSON `gorm:"type:jsonb"`
	ServiceNotes      string
	LineItems         datatypes.JSON `gorm:"type:jsonb"`
	CustomerSignature string
	Value             float64
	CompletedAt       *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoEventDTO represents an embedded check event. All fields are pointers:
// an event that has not happened yet is a row of NULLs.
type GeoEventDTO struct {
	At        *time.Time
	Latitude  *float64
	Longitude *float64
}

// photoDoc is the JSON shape of one evidence photo inside the JSONB column.
type photoDoc struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	CapturedAt time.Time `json:"capturedAt"`
}

// lineItemDoc is the JSON shape of one ledger entry inside the JSONB column.
// The derived total is stored alongside the inputs for read-side convenience
// but never trusted on restore.
type lineItemDoc struct {
	ID        string  `json:"id"`
	Kind      int     `json:"kind"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
	SourceID  string  `json:"sourceId,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	photosJSON, err := marshalPhotos(aggregate.EvidencePhotos())
	if err != nil {
		return OrderDTO{}, err
	}

	itemsJSON, err := marshalLineItems(aggregate.LineItems())
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Status:            int(aggregate.Status()),
		Priority:          int(aggregate.Priority()),
		CheckIn:           geoEventToDTO(aggregate.CheckIn()),
		CheckOut:          geoEventToDTO(aggregate.CheckOut()),
		EvidencePhotos:    photosJSON,
		ServiceNotes:      aggregate.ServiceNotes(),
		LineItems:         itemsJSON,
		CustomerSignature: aggregate.CustomerSignature(),
		Value:             aggregate.Value(),
	}

	if at := aggregate.CompletedAt(); at != nil {
		completedAt := *at
		dto.CompletedAt = &completedAt
	}

	return dto, nil
}

// toDomain converts a database row to an order domain aggregate.
// Reconstruction goes through RestoreOrder, so every invariant is rechecked.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	checkIn, err := geoEventFromDTO(dto.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := geoEventFromDTO(dto.CheckOut)
	if err != nil {
		return nil, err
	}

	photos, err := unmarshalPhotos(dto.EvidencePhotos)
	if err != nil {
		return nil, err
	}

	items, err := unmarshalLineItems(dto.LineItems)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.Status(dto.Status),
		order.Priority(dto.Priority),
		checkIn,
		checkOut,
		photos,
		dto.ServiceNotes,
		items,
		dto.CustomerSignature,
		dto.CompletedAt,
	)
}

func geoEventToDTO(event *order.GeoEvent) GeoEventDTO {
	if event == nil {
		return GeoEventDTO{}
	}

	at := event.OccurredAt()
	latitude := event.Point().Latitude()
	longitude := event.Point().Longitude()

	return GeoEventDTO{
		At:        &at,
		Latitude:  &latitude,
		Longitude: &longitude,
	}
}

func geoEventFromDTO(dto GeoEventDTO) (*order.GeoEvent, error) {
	if dto.At == nil || dto.Latitude == nil || dto.Longitude == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
	if err != nil {
		return nil, err
	}

	event, err := order.NewGeoEvent(*dto.At, point)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func marshalPhotos(photos []order.Photo) (datatypes.JSON, error) {
	docs := make([]photoDoc, 0, len(photos))
	for _, photo := range photos {
		docs = append(docs, photoDoc{
			ID:         photo.ID().String(),
			URL:        photo.URL(),
			Caption:    photo.Caption(),
			CapturedAt: photo.CapturedAt(),
		})
	}

	return json.Marshal(docs)
}

func unmarshalPhotos(raw datatypes.JSON) ([]order.Photo, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []photoDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	photos := make([]order.Photo, 0, len(docs))
	for _, doc := range docs {
		id, err := kernel.UUIDFromString(doc.ID)
		if err != nil {
			return nil, err
		}

		photo, err := order.NewPhoto(id, doc.URL, doc.Caption, doc.CapturedAt)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	return photos, nil
}

// marshalLineItems serializes the ledger. The draft write path reuses it to
// persist items without going through the aggregate.
func marshalLineItems(items []order.LineItem) (datatypes.JSON, error) {
	docs := make([]lineItemDoc, 0, len(items))
	for _, item := range items {
		doc := lineItemDoc{
			ID:        item.ID().String(),
			Kind:      int(item.Kind()),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Total:     item.Total(),
		}

		if sourceID := item.SourceID(); sourceID != nil {
			doc.SourceID = sourceID.String()
		}

		docs = append(docs, doc)
	}

	return json.Marshal(docs)
}

func unmarshalLineItems(raw datatypes.JSON) ([]order.LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []lineItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(docs))
	for _, doc := range docs {
		id, err := kernel.UUIDFromString(doc.ID)
		if err != nil {
			return nil, err
		}

		var sourceID *kernel.UUID
		if doc.SourceID != "" {
			sID, sourceErr := kernel.UUIDFromString(doc.SourceID)
			if sourceErr != nil {
				return nil, sourceErr
			}
			sourceID = &sID
		}

		item, err := order.NewLineItem(id, order.ItemKind(doc.Kind), doc.Name,
			doc.Quantity, doc.UnitPrice, sourceID)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
