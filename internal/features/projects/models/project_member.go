package projects_models

import (
	"time"

	users_enums "creativeflow/internal/features/users/enums"

	"github.com/google/uuid"
)

type ProjectMember struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id;uniqueIndex:idx_project_members_project_user"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id;uniqueIndex:idx_project_members_project_user;index"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role;size:50;default:member"`
	JoinedAt  time.Time               `json:"joinedAt"  gorm:"column:joined_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
