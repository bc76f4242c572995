package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectAsset struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id;index;not null"`
	FileName  string    `json:"fileName"  gorm:"column:file_name;size:255"`
	FileSize  int64     `json:"fileSize"  gorm:"column:file_size"`
	FileType  string    `json:"fileType"  gorm:"column:file_type;size:50"`
	// location inside the file store, never exposed
	FilePath   string     `json:"-"          gorm:"column:file_path;size:500"`
	UploadedBy *uuid.UUID `json:"uploadedBy" gorm:"column:uploaded_by;index"`
	UploadedAt time.Time  `json:"uploadedAt" gorm:"column:uploaded_at"`
}

func (ProjectAsset) TableName() string {
	return "project_assets"
}
