// Package shipmentrepo provides the GORM persistence of the shipment aggregate.
// Rows hold timestamps only; status is derived by the domain when a shipment is read.
package shipmentrepo

import (
	"time"

	"shiptrack/internal/adapters/out/postgres/locationrepo"
	"shiptrack/internal/adapters/out/postgres/userrepo"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentDTO is a row of the shipments table.
type ShipmentDTO struct {
	ID                    int64                     `gorm:"primaryKey;autoIncrement"`
	SenderUserID          int64                     `gorm:"not null;index"`
	Sender                *userrepo.UserDTO         `gorm:"foreignKey:SenderUserID;constraint:OnDelete:RESTRICT"`
	OriginLocationID      int64                     `gorm:"not null;index;check:chk_shipments_endpoints,origin_location_id <> destination_location_id"`
	Origin                *locationrepo.LocationDTO `gorm:"foreignKey:OriginLocationID;constraint:OnDelete:RESTRICT"`
	DestinationLocationID int64                     `gorm:"not null;index"`
	Destination           *locationrepo.LocationDTO `gorm:"foreignKey:DestinationLocationID;constraint:OnDelete:RESTRICT"`
	Size                  string                    `gorm:"size:2;not null"`
	PickupAt              *time.Time
	ExpectedDeliveryAt    *time.Time
	DeliveredAt           *time.Time
	Notes                 *string   `gorm:"size:1000"`
	CreatedAt             time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                    s.ID().Int64(),
		SenderUserID:          s.SenderID().Int64(),
		OriginLocationID:      s.OriginID().Int64(),
		DestinationLocationID: s.DestinationID().Int64(),
		Size:                  s.Size().String(),
		PickupAt:              s.PickupAt(),
		ExpectedDeliveryAt:    s.ExpectedDeliveryAt(),
		DeliveredAt:           s.DeliveredAt(),
		Notes:                 s.Notes(),
		CreatedAt:             s.CreatedAt(),
	}
}

// mutableColumns maps the columns Update is allowed to write to their new values.
// Nil timestamps are written as NULL.
func mutableColumns(s *shipment.Shipment) map[string]any {
	return map[string]any{
		"destination_location_id": s.DestinationID().Int64(),
		"size":                    s.Size().String(),
		"pickup_at":               s.PickupAt(),
		"expected_delivery_at":    s.ExpectedDeliveryAt(),
		"delivered_at":            s.DeliveredAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.NewID(dto.SenderUserID)
	if err != nil {
		return nil, err
	}
	originID, err := kernel.NewID(dto.OriginLocationID)
	if err != nil {
		return nil, err
	}
	destinationID, err := kernel.NewID(dto.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	size, err := shipment.ParseSize(dto.Size)
	if err != nil {
		return nil, err
	}

	origin, err := endpointToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := endpointToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.State{
		ID:                 id,
		SenderID:           senderID,
		OriginID:           originID,
		DestinationID:      destinationID,
		Size:               size,
		PickupAt:           utc(dto.PickupAt),
		ExpectedDeliveryAt: utc(dto.ExpectedDeliveryAt),
		DeliveredAt:        utc(dto.DeliveredAt),
		Notes:              dto.Notes,
		CreatedAt:          dto.CreatedAt.UTC(),
		Origin:             origin,
		Destination:        destination,
	})
}

func endpointToDomain(dto *locationrepo.LocationDTO) (*location.Location, error) {
	if dto == nil {
		return nil, nil
	}
	return locationrepo.ToDomain(*dto)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
