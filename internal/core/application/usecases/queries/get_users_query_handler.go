package queries

import (
	"context"
	"database/sql"

	"shiptrack/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetUsersQueryHandler reads users straight from the users table.
type GetUsersQueryHandler struct {
	db *gorm.DB
}

func NewGetUsersQueryHandler(db *gorm.DB) GetUsersQueryHandler {
	return GetUsersQueryHandler{db: db}
}

// Handle returns users ordered by ascending id.
func (h GetUsersQueryHandler) Handle(ctx context.Context, query GetUsersQuery) ([]GetUsersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	users := make([]GetUsersQueryResponse, 0)

	tx := h.db.WithContext(ctx).
		Table("users").
		Select("id, email, name, created_at").
		Order("id")
	if query.Email() != "" {
		tx = tx.Where("email = ?", query.Email())
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u GetUsersQueryResponse
		var id int64
		var name sql.NullString

		if err = rows.Scan(&id, &u.Email, &name, &u.CreatedAt); err != nil {
			return nil, err
		}

		if u.ID, err = kernel.NewID(id); err != nil {
			return nil, err
		}
		if name.Valid {
			u.Name = &name.String
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
