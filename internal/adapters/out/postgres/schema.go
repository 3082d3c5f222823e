package postgres

import (
	"shiptrack/internal/adapters/out/postgres/locationrepo"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the users, locations and shipments tables.
// Order matters: each table references the previous ones.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&locationrepo.LocationDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
}
