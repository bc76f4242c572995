package analytics

import (
	"time"

	"creativeflow/internal/storage"

	"github.com/google/uuid"
)

// AnalyticsEvent is append-only. project_id has no foreign key so the history
// of a deleted project stays readable.
type AnalyticsEvent struct {
	ID        uuid.UUID      `json:"id"        gorm:"column:id;primaryKey"`
	UserID    *uuid.UUID     `json:"userId"    gorm:"column:user_id;index"`
	ProjectID *uuid.UUID     `json:"projectId" gorm:"column:project_id;index"`
	EventType string         `json:"eventType" gorm:"column:event_type;size:100;index"`
	EventData map[string]any `json:"eventData" gorm:"column:event_data;serializer:json"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at;index"`
}

func init() {
	storage.RegisterModels(&AnalyticsEvent{})
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
