package projects_models

import (
	"time"

	projects_enums "creativeflow/internal/features/projects/enums"
	"creativeflow/internal/storage"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id;primaryKey"`
	Name        string                       `json:"name"        gorm:"column:name;size:255;not null"`
	Description *string                      `json:"description" gorm:"column:description"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status;size:50;default:planning"`
	Progress    int                          `json:"progress"    gorm:"column:progress;default:0"`

	// Brand
	BrandName        *string `json:"brandName"        gorm:"column:brand_name;size:255"`
	BrandDescription *string `json:"brandDescription" gorm:"column:brand_description"`
	Industry         *string `json:"industry"         gorm:"column:industry;size:100"`
	Objectives       *string `json:"objectives"       gorm:"column:objectives"`
	TargetAudience   *string `json:"targetAudience"   gorm:"column:target_audience"`

	StartDate   *time.Time `json:"startDate"   gorm:"column:start_date"`
	Deadline    *time.Time `json:"deadline"    gorm:"column:deadline"`
	CompletedAt *time.Time `json:"completedAt" gorm:"column:completed_at"`

	// nil once the creator is deleted
	CreatedBy *uuid.UUID `json:"createdBy" gorm:"column:created_by;index"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func init() {
	storage.RegisterModels(&Project{}, &ProjectMember{}, &ProjectAsset{})
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsCompleted() bool {
	return p.Status == projects_enums.ProjectStatusCompleted
}
