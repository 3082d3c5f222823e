// Package locationrepo provides the GORM persistence of the location aggregate.
package locationrepo

import (
	"time"

	"shiptrack/internal/adapters/out/postgres/userrepo"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
)

// LocationDTO is a row of the locations table. Optional address lines are stored as
// empty strings. Deleting the owner is restricted while locations exist.
type LocationDTO struct {
	ID         int64             `gorm:"primaryKey;autoIncrement"`
	UserID     int64             `gorm:"not null;index"`
	User       *userrepo.UserDTO `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Nickname   string            `gorm:"size:100;not null"`
	Address1   string            `gorm:"size:200;not null;default:''"`
	Address2   string            `gorm:"size:200;not null;default:''"`
	City       string            `gorm:"size:100;not null"`
	State      string            `gorm:"size:100;not null;default:''"`
	Country    string            `gorm:"size:100;not null"`
	PostalCode string            `gorm:"size:20;not null;default:''"`
	Lat        float64           `gorm:"not null"`
	Lng        float64           `gorm:"not null"`
	CreatedAt  time.Time         `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "locations".
func (LocationDTO) TableName() string {
	return "locations"
}

func fromDomain(l *location.Location) LocationDTO {
	addr := l.Address()
	return LocationDTO{
		ID:         l.ID().Int64(),
		UserID:     l.OwnerID().Int64(),
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

// ToDomain rebuilds a location from its row. Other repositories use it for
// preloaded associations.
func ToDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.NewID(dto.UserID)
	if err != nil {
		return nil, err
	}

	addr, err := location.NewAddress(dto.Address1, dto.Address2, dto.City, dto.State, dto.Country, dto.PostalCode)
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return location.RestoreLocation(id, ownerID, dto.Nickname, addr, point, dto.CreatedAt.UTC())
}
