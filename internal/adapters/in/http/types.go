package http

import (
	"bytes"
	"encoding/json"
	"time"

	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/user"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewUser struct {
	Email string  `json:"email" validate:"required,email,max=254"`
	Name  *string `json:"name,omitempty" validate:"omitempty,max=200"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewLocation struct {
	Nickname   string   `json:"nickname" validate:"required,max=100"`
	Address1   string   `json:"address1" validate:"max=200"`
	Address2   string   `json:"address2" validate:"max=200"`
	City       string   `json:"city" validate:"required,max=100"`
	State      string   `json:"state" validate:"max=100"`
	Country    string   `json:"country" validate:"required,max=100"`
	PostalCode string   `json:"postalCode" validate:"max=20"`
	Lat        *float64 `json:"lat" validate:"required,latitude"`
	Lng        *float64 `json:"lng" validate:"required,longitude"`
}

type Location struct {
	ID         int64     `json:"id"`
	Nickname   string    `json:"nickname"`
	Address1   string    `json:"address1"`
	Address2   string    `json:"address2"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postalCode"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NewShipment struct {
	OriginLocationID      int64      `json:"originLocationId" validate:"required,gt=0"`
	DestinationLocationID int64      `json:"destinationLocationId" validate:"required,gt=0"`
	Size                  string     `json:"size" validate:"required,oneof=S M L XL"`
	PickupAt              *time.Time `json:"pickupAt"`
	ExpectedDeliveryAt    *time.Time `json:"expectedDeliveryAt"`
	Notes                 *string    `json:"notes" validate:"omitempty,max=1000"`
}

// ShipmentPatch is the PATCH body. Absent fields are untouched; expectedDeliveryAt
// distinguishes absent from null.
type ShipmentPatch struct {
	DestinationLocationID *int64       `json:"destinationLocationId" validate:"omitempty,gt=0"`
	Size                  *string      `json:"size" validate:"omitempty,oneof=S M L XL"`
	ExpectedDeliveryAt    OptionalTime `json:"expectedDeliveryAt"`
}

// OptionalTime is a JSON timestamp that remembers whether its key was present.
// Set with a nil Value means the client sent null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// Transition is the optional body of the pickup and deliver actions.
type Transition struct {
	At *time.Time `json:"at"`
}

type Shipment struct {
	ID                    int64      `json:"id"`
	SenderUserID          int64      `json:"senderUserId"`
	OriginLocationID      int64      `json:"originLocationId"`
	DestinationLocationID int64      `json:"destinationLocationId"`
	Origin                *Location  `json:"origin,omitempty"`
	Destination           *Location  `json:"destination,omitempty"`
	DistanceKm            *int       `json:"distanceKm"`
	Size                  string     `json:"size"`
	PickupAt              *time.Time `json:"pickupAt"`
	ExpectedDeliveryAt    *time.Time `json:"expectedDeliveryAt"`
	DeliveredAt           *time.Time `json:"deliveredAt"`
	Notes                 *string    `json:"notes"`
	CreatedAt             time.Time  `json:"createdAt"`
	Status                string     `json:"status"`
	DeliveredLate         *bool      `json:"deliveredLate,omitempty"`
	DerivedAt             time.Time  `json:"derivedAt"`
}

type ShipmentPage struct {
	Items     []Shipment `json:"items"`
	Page      int        `json:"page"`
	PerPage   int        `json:"perPage"`
	DerivedAt time.Time  `json:"derivedAt"`
}

type ImpersonationToken struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	UserID int64  `json:"userId"`
	Exp    int64  `json:"exp"`
}

func toUser(u *user.User) User {
	return User{
		ID:        u.ID().Int64(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}

func toUserFromReadModel(u queries.GetUsersQueryResponse) User {
	return User{
		ID:        u.ID.Int64(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func toLocation(l *location.Location) *Location {
	if l == nil {
		return nil
	}
	addr := l.Address()
	return &Location{
		ID:         l.ID().Int64(),
		Nickname:   l.Nickname(),
		Address1:   addr.Line1(),
		Address2:   addr.Line2(),
		City:       addr.City(),
		State:      addr.State(),
		Country:    addr.Country(),
		PostalCode: addr.PostalCode(),
		Lat:        l.Point().Lat(),
		Lng:        l.Point().Lng(),
		CreatedAt:  l.CreatedAt(),
	}
}

func toLocationFromReadModel(l queries.GetLocationsQueryResponse) Location {
	return Location{
		ID:         l.ID.Int64(),
		Nickname:   l.Nickname,
		Address1:   l.Address1,
		Address2:   l.Address2,
		City:       l.City,
		State:      l.State,
		Country:    l.Country,
		PostalCode: l.PostalCode,
		Lat:        l.Lat,
		Lng:        l.Lng,
		CreatedAt:  l.CreatedAt,
	}
}

// toShipment renders a snapshot. The status label follows scheme; deliveredLate is
// only present for delivered shipments.
func toShipment(snap shipment.Snapshot, scheme shipment.Scheme) Shipment {
	s := snap.Shipment
	return Shipment{
		ID:                    s.ID().Int64(),
		SenderUserID:          s.SenderID().Int64(),
		OriginLocationID:      s.OriginID().Int64(),
		DestinationLocationID: s.DestinationID().Int64(),
		Origin:                toLocation(s.Origin()),
		Destination:           toLocation(s.Destination()),
		DistanceKm:            s.DistanceKm(),
		Size:                  s.Size().String(),
		PickupAt:              s.PickupAt(),
		ExpectedDeliveryAt:    s.ExpectedDeliveryAt(),
		DeliveredAt:           s.DeliveredAt(),
		Notes:                 s.Notes(),
		CreatedAt:             s.CreatedAt(),
		Status:                snap.Label(scheme).String(),
		DeliveredLate:         snap.IsDeliveredLate(),
		DerivedAt:             snap.DerivedAt,
	}
}
