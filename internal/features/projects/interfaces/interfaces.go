package projects_interfaces

import (
	"io"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRecorder appends analytics events and drops cached stats affected by
// project writes.
type EventRecorder interface {
	RecordEvent(tx *gorm.DB, eventType string, userID, projectID *uuid.UUID, data map[string]any) error
	InvalidateStats(userIDs ...uuid.UUID)
}

type AssetFileStore interface {
	Save(projectID, assetID uuid.UUID, fileName string, content io.Reader, maxBytes int64) (string, int64, error)
	Open(path string) (*os.File, error)
	Delete(path string) error
	DeleteProject(projectID uuid.UUID) error
}
