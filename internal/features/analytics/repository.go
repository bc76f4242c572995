package analytics

import (
	"creativeflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsRepository struct{}

// Create inserts event through tx, or through the shared connection when tx
// is nil.
func (r *AnalyticsRepository) Create(tx *gorm.DB, event *AnalyticsEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.EventData == nil {
		event.EventData = map[string]any{}
	}

	if tx == nil {
		tx = storage.GetDb()
	}

	return tx.Create(event).Error
}

func (r *AnalyticsRepository) GetEvents(filter eventFilter, limit, offset int) ([]*AnalyticsEvent, error) {
	events := make([]*AnalyticsEvent, 0)

	err := r.applyFilter(storage.GetDb().Model(&AnalyticsEvent{}), filter).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error

	return events, err
}

func (r *AnalyticsRepository) CountEvents(filter eventFilter) (int64, error) {
	var count int64

	err := r.applyFilter(storage.GetDb().Model(&AnalyticsEvent{}), filter).Count(&count).Error

	return count, err
}

// GetUserEmails maps user ids to emails. Ids without a user row are absent.
func (r *AnalyticsRepository) GetUserEmails(userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	emails := make(map[uuid.UUID]string, len(userIDs))
	if len(userIDs) == 0 {
		return emails, nil
	}

	var rows []userEmailRow
	if err := storage.GetDb().
		Table("users").
		Select("id, email").
		Where("id IN ?", userIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		emails[row.ID] = row.Email
	}

	return emails, nil
}

// GetProjectStatRows loads status and dates of the projects userID is a
// member of, or of every project when userID is nil.
func (r *AnalyticsRepository) GetProjectStatRows(userID *uuid.UUID) ([]projectStatRow, error) {
	rows := make([]projectStatRow, 0)

	query := storage.GetDb().
		Table("projects p").
		Select("p.status, p.start_date, p.completed_at")

	if userID != nil {
		query = query.Where("p.id IN (SELECT pm.project_id FROM project_members pm WHERE pm.user_id = ?)", *userID)
	}

	err := query.Scan(&rows).Error

	return rows, err
}

func (r *AnalyticsRepository) applyFilter(query *gorm.DB, filter eventFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if len(filter.Types) > 0 {
		query = query.Where("event_type IN ?", filter.Types)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	return query
}
