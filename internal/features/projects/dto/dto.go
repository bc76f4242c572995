package projects_dto

import (
	"time"

	projects_enums "creativeflow/internal/features/projects/enums"
	projects_models "creativeflow/internal/features/projects/models"
	users_enums "creativeflow/internal/features/users/enums"
	"creativeflow/internal/util/app_errors"
	time_parser "creativeflow/internal/util/time"
	"creativeflow/internal/util/validation"

	"github.com/google/uuid"
)

// CreateProjectRequestDTO is the body of POST /projects and the payload the
// project wizard submits. Dates are calendar dates (YYYY-MM-DD).
type CreateProjectRequestDTO struct {
	Name             string                        `json:"name"             validate:"required,max=255"`
	Description      *string                       `json:"description"`
	Status           *projects_enums.ProjectStatus `json:"status"           validate:"omitempty,oneof=planning active review completed archived"`
	Progress         *int                          `json:"progress"         validate:"omitempty,min=0,max=100"`
	BrandName        string                        `json:"brandName"        validate:"required,max=255"`
	BrandDescription *string                       `json:"brandDescription"`
	Industry         string                        `json:"industry"         validate:"required,max=100"`
	Objectives       *string                       `json:"objectives"`
	TargetAudience   *string                       `json:"targetAudience"`
	StartDate        *string                       `json:"startDate"        validate:"omitempty,datetime=2006-01-02"`
	Deadline         *string                       `json:"deadline"         validate:"omitempty,datetime=2006-01-02"`
}

func (CreateProjectRequestDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":      "Project name is required",
		"name.max":           "Project name must be at most 255 characters",
		"brandName.required": "Brand name is required",
		"brandName.max":      "Brand name must be at most 255 characters",
		"industry.required":  "Industry is required",
		"industry.max":       "Industry must be at most 100 characters",
		"status.oneof":       "Status must be one of planning, active, review, completed, archived",
		"progress.min":       "Progress must be between 0 and 100",
		"progress.max":       "Progress must be between 0 and 100",
		"startDate.datetime": "Start date must be a YYYY-MM-DD date",
		"deadline.datetime":  "Deadline must be a YYYY-MM-DD date",
	}
}

// Validate runs the field rules and the date range rule. It returns a
// ValidationError keyed by JSON field name.
func (r *CreateProjectRequestDTO) Validate() error {
	validation.TrimStrings(r)

	if err := validation.Struct(r); err != nil {
		return err
	}

	return validateDateRange(r.StartDate, r.Deadline)
}

// UpdateProjectRequestDTO is a partial update: nil fields keep their value.
// An empty date string clears the date.
type UpdateProjectRequestDTO struct {
	Name             *string                       `json:"name"             validate:"omitempty,min=1,max=255"`
	Description      *string                       `json:"description"`
	Status           *projects_enums.ProjectStatus `json:"status"           validate:"omitempty,oneof=planning active review completed archived"`
	Progress         *int                          `json:"progress"         validate:"omitempty,min=0,max=100"`
	BrandName        *string                       `json:"brandName"        validate:"omitempty,max=255"`
	BrandDescription *string                       `json:"brandDescription"`
	Industry         *string                       `json:"industry"         validate:"omitempty,max=100"`
	Objectives       *string                       `json:"objectives"`
	TargetAudience   *string                       `json:"targetAudience"`
	StartDate        *string                       `json:"startDate"        validate:"omitempty,datetime=2006-01-02"`
	Deadline         *string                       `json:"deadline"         validate:"omitempty,datetime=2006-01-02"`
}

func (UpdateProjectRequestDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"name.min":           "Project name is required",
		"name.max":           "Project name must be at most 255 characters",
		"status.oneof":       "Status must be one of planning, active, review, completed, archived",
		"progress.min":       "Progress must be between 0 and 100",
		"progress.max":       "Progress must be between 0 and 100",
		"startDate.datetime": "Start date must be a YYYY-MM-DD date",
		"deadline.datetime":  "Deadline must be a YYYY-MM-DD date",
	}
}

func (r *UpdateProjectRequestDTO) Validate() error {
	validation.TrimStrings(r)

	return validation.Struct(r)
}

type ProjectResponseDTO struct {
	projects_models.Project

	// caller's membership role, nil for admins outside the project
	UserRole *users_enums.ProjectRole `json:"userRole,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

type AddMemberRequestDTO struct {
	Email string                  `json:"email" validate:"required,email"`
	Role  users_enums.ProjectRole `json:"role"  validate:"required,oneof=admin member"`
}

func (AddMemberRequestDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required": "Email is required",
		"role.required":  "Role is required",
		"role.oneof":     "Role must be admin or member",
	}
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id"`
	Email     string                  `json:"email"     gorm:"column:email"`
	FirstName *string                 `json:"firstName" gorm:"column:first_name"`
	LastName  *string                 `json:"lastName"  gorm:"column:last_name"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	JoinedAt  time.Time               `json:"joinedAt"  gorm:"column:joined_at"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}

type ListAssetsResponseDTO struct {
	Assets []projects_models.ProjectAsset `json:"assets"`
}

func validateDateRange(startDate, deadline *string) error {
	start, err := time_parser.ParseDatePtr(startDate)
	if err != nil {
		return app_errors.NewFieldError("startDate", "Start date must be a YYYY-MM-DD date")
	}

	end, err := time_parser.ParseDatePtr(deadline)
	if err != nil {
		return app_errors.NewFieldError("deadline", "Deadline must be a YYYY-MM-DD date")
	}

	if start != nil && end != nil && end.Before(*start) {
		return app_errors.NewFieldError("deadline", "Deadline cannot be before the start date")
	}

	return nil
}
