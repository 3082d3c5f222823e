// Package userrepo provides the GORM persistence of the user aggregate: the users
// table layout and the mapping between rows and domain users.
package userrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/user"
)

// UserDTO is a row of the users table. Email is stored normalized and is unique.
type UserDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"size:254;not null;uniqueIndex"`
	Name      *string   `gorm:"size:200"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID().Int64(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Email, dto.Name, dto.CreatedAt.UTC())
}
