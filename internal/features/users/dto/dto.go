package users_dto

import (
	"time"

	users_enums "creativeflow/internal/features/users/enums"
	users_models "creativeflow/internal/features/users/models"

	"github.com/google/uuid"
)

// AccessTokenResponseDTO is returned to callers authenticating with bearer
// tokens: the Go API client and tests.
type AccessTokenResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type UserProfileResponseDTO struct {
	ID              uuid.UUID            `json:"id"`
	Email           string               `json:"email"`
	FirstName       *string              `json:"firstName"`
	LastName        *string              `json:"lastName"`
	ProfileImageURL *string              `json:"profileImageUrl"`
	Role            users_enums.UserRole `json:"role"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func NewUserProfileResponseDTO(u *users_models.User) UserProfileResponseDTO {
	return UserProfileResponseDTO{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}

type ListUsersRequestDTO struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type ChangeUserRoleRequestDTO struct {
	Role users_enums.UserRole `json:"role" validate:"required,oneof=user admin"`
}

func (ChangeUserRoleRequestDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"role.required": "Role is required",
		"role.oneof":    "Role must be user or admin",
	}
}

type UpdateUserRequestDTO struct {
	FirstName       *string `json:"firstName"       validate:"omitempty,max=255"`
	LastName        *string `json:"lastName"        validate:"omitempty,max=255"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}
