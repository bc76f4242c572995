package users_models

import (
	"creativeflow/internal/storage"
	users_enums "creativeflow/internal/features/users/enums"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID            `json:"id"              gorm:"column:id;primaryKey"`
	Email           string               `json:"email"           gorm:"column:email;uniqueIndex;size:255"`
	FirstName       *string              `json:"firstName"       gorm:"column:first_name;size:255"`
	LastName        *string              `json:"lastName"        gorm:"column:last_name;size:255"`
	ProfileImageURL *string              `json:"profileImageUrl" gorm:"column:profile_image_url"`
	Role            users_enums.UserRole `json:"role"            gorm:"column:role;size:20;default:user"`
	CreatedAt       time.Time            `json:"createdAt"       gorm:"column:created_at"`
	UpdatedAt       time.Time            `json:"updatedAt"       gorm:"column:updated_at"`
}

func init() {
	storage.RegisterModels(&User{})
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) CanManageUsers() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) DisplayName() string {
	parts := make([]string, 0, 2)
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}

	if len(parts) == 0 {
		return u.Email
	}

	return strings.Join(parts, " ")
}
