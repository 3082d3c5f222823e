package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetLocationsQueryHandler reads a user's locations straight from the locations table.
type GetLocationsQueryHandler struct {
	db *gorm.DB
}

func NewGetLocationsQueryHandler(db *gorm.DB) GetLocationsQueryHandler {
	return GetLocationsQueryHandler{db: db}
}

// Handle returns the owner's locations ordered by ascending id.
func (h GetLocationsQueryHandler) Handle(ctx context.Context, query GetLocationsQuery) ([]GetLocationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	locations := make([]GetLocationsQueryResponse, 0)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			nickname,
			address1,
			address2,
			city,
			state,
			country,
			postal_code,
			lat,
			lng,
			created_at
		FROM locations
		WHERE user_id = ?
		ORDER BY id
	`, query.OwnerID().Int64()).Scan(&locations).Error
	if err != nil {
		return nil, err
	}

	return locations, nil
}
