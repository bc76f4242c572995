package analytics

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStats struct {
	TotalProjects     int64   `json:"totalProjects"`
	ActiveProjects    int64   `json:"activeProjects"`
	CompletedProjects int64   `json:"completedProjects"`
	AvgCompletionTime float64 `json:"avgCompletionTime"` // days
}

type GetEventsRequest struct {
	Limit     int    `form:"limit"     json:"limit"`
	Offset    int    `form:"offset"    json:"offset"`
	UserID    string `form:"userId"    json:"userId"`
	ProjectID string `form:"projectId" json:"projectId"`
	EventType string `form:"eventType" json:"eventType"`
}

type GetEventsResponse struct {
	Events []*EventDTO `json:"events"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type EventDTO struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"userId"`
	ProjectID *uuid.UUID     `json:"projectId"`
	EventType string         `json:"eventType"`
	EventData map[string]any `json:"eventData"`
	CreatedAt time.Time      `json:"createdAt"`
	UserEmail *string        `json:"userEmail"`
}

type userEmailRow struct {
	ID    uuid.UUID `gorm:"column:id"`
	Email string    `gorm:"column:email"`
}

type TimelinePoint struct {
	Month     string `json:"month"` // YYYY-MM
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

type TimelineResponse struct {
	Days   int             `json:"days"`
	Points []TimelinePoint `json:"points"`
}

// eventFilter narrows event queries. Zero values mean no filter.
type eventFilter struct {
	UserID    *uuid.UUID
	ProjectID *uuid.UUID
	EventType string
	Types     []string
	Since     *time.Time
}

type projectStatRow struct {
	Status      string     `gorm:"column:status"`
	StartDate   *time.Time `gorm:"column:start_date"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}
