package analytics

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	projects_enums "creativeflow/internal/features/projects/enums"
	users_models "creativeflow/internal/features/users/models"
	"creativeflow/internal/util/app_errors"
	cache_utils "creativeflow/internal/util/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	statsScopeAll = "all"

	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

type AnalyticsService struct {
	analyticsRepository *AnalyticsRepository
	logger              *slog.Logger

	statsCacheUtil *cache_utils.CacheUtil[ProjectStats]
}

// WriteEvent stores an event outside of any transaction. Failures are logged,
// the calling operation has already succeeded.
func (s *AnalyticsService) WriteEvent(
	eventType string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
	data map[string]any,
) {
	if err := s.RecordEvent(nil, eventType, userID, projectID, data); err != nil {
		s.logger.Error("failed to write analytics event", "eventType", eventType, "error", err)
	}
}

// RecordEvent stores an event inside tx so it commits or rolls back with the
// write it describes.
func (s *AnalyticsService) RecordEvent(
	tx *gorm.DB,
	eventType string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
	data map[string]any,
) error {
	event := &AnalyticsEvent{
		UserID:    userID,
		ProjectID: projectID,
		EventType: eventType,
		EventData: data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.analyticsRepository.Create(tx, event); err != nil {
		return fmt.Errorf("failed to record %s event: %w", eventType, err)
	}

	return nil
}

// GetProjectStats aggregates the projects userID is a member of, or all
// projects when userID is nil.
func (s *AnalyticsService) GetProjectStats(userID *uuid.UUID) (*ProjectStats, error) {
	stats, err := s.statsCacheUtil.GetOrLoad(statsScope(userID), func() (*ProjectStats, error) {
		rows, err := s.analyticsRepository.GetProjectStatRows(userID)
		if err != nil {
			return nil, err
		}

		return aggregateStats(rows), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute project stats: %w", err)
	}

	return stats, nil
}

// GetStatsForUser picks the scope by role: admins see every project.
func (s *AnalyticsService) GetStatsForUser(user *users_models.User) (*ProjectStats, error) {
	if user.IsAdmin() {
		return s.GetProjectStats(nil)
	}

	return s.GetProjectStats(&user.ID)
}

// InvalidateStats drops the cached system-wide stats and those of userIDs.
func (s *AnalyticsService) InvalidateStats(userIDs ...uuid.UUID) {
	keys := make([]string, 0, len(userIDs)+1)
	keys = append(keys, statsScopeAll)

	for _, userID := range userIDs {
		keys = append(keys, userID.String())
	}

	s.statsCacheUtil.Invalidate(keys...)
}

// GetEvents lists events newest first. Non-admins only see events they
// caused.
func (s *AnalyticsService) GetEvents(user *users_models.User, request *GetEventsRequest) (*GetEventsResponse, error) {
	filter, err := s.buildEventFilter(user, request)
	if err != nil {
		return nil, err
	}

	limit := request.Limit
	if limit <= 0 || limit > maxEventsLimit {
		limit = defaultEventsLimit
	}

	offset := max(request.Offset, 0)

	events, err := s.analyticsRepository.GetEvents(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	total, err := s.analyticsRepository.CountEvents(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	eventDTOs, err := s.toEventDTOs(events)
	if err != nil {
		return nil, err
	}

	return &GetEventsResponse{
		Events: eventDTOs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// GetTimeline counts project_created and project_completed events per month
// over the last days days.
func (s *AnalyticsService) GetTimeline(user *users_models.User, days int) (*TimelineResponse, error) {
	if !IsValidTimelineRange(days) {
		return nil, app_errors.NewFieldError("days", "Days must be one of 30, 90, 365")
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days)

	filter := eventFilter{
		Types: []string{EventProjectCreated, EventProjectCompleted},
		Since: &since,
	}
	if !user.IsAdmin() {
		filter.UserID = &user.ID
	}

	events, err := s.analyticsRepository.GetEvents(filter, -1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline events: %w", err)
	}

	return &TimelineResponse{
		Days:   days,
		Points: bucketByMonth(events, since, now),
	}, nil
}

func (s *AnalyticsService) buildEventFilter(user *users_models.User, request *GetEventsRequest) (eventFilter, error) {
	filter := eventFilter{EventType: request.EventType}

	if request.UserID != "" {
		userID, err := uuid.Parse(request.UserID)
		if err != nil {
			return filter, app_errors.NewFieldError("userId", "Invalid user ID")
		}

		if !user.IsAdmin() && userID != user.ID {
			return filter, fmt.Errorf("insufficient permissions to view events of other users: %w", app_errors.ErrForbidden)
		}

		filter.UserID = &userID
	}

	if request.ProjectID != "" {
		projectID, err := uuid.Parse(request.ProjectID)
		if err != nil {
			return filter, app_errors.NewFieldError("projectId", "Invalid project ID")
		}

		filter.ProjectID = &projectID
	}

	if !user.IsAdmin() {
		filter.UserID = &user.ID
	}

	return filter, nil
}

func (s *AnalyticsService) toEventDTOs(events []*AnalyticsEvent) ([]*EventDTO, error) {
	userIDs := make([]uuid.UUID, 0, len(events))
	seen := make(map[uuid.UUID]struct{}, len(events))

	for _, event := range events {
		if event.UserID == nil {
			continue
		}
		if _, ok := seen[*event.UserID]; ok {
			continue
		}

		seen[*event.UserID] = struct{}{}
		userIDs = append(userIDs, *event.UserID)
	}

	emails, err := s.analyticsRepository.GetUserEmails(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get event users: %w", err)
	}

	result := make([]*EventDTO, len(events))
	for i, event := range events {
		dto := &EventDTO{
			ID:        event.ID,
			UserID:    event.UserID,
			ProjectID: event.ProjectID,
			EventType: event.EventType,
			EventData: event.EventData,
			CreatedAt: event.CreatedAt,
		}

		if event.UserID != nil {
			if email, ok := emails[*event.UserID]; ok {
				dto.UserEmail = &email
			}
		}

		result[i] = dto
	}

	return result, nil
}

func statsScope(userID *uuid.UUID) string {
	if userID == nil {
		return statsScopeAll
	}

	return userID.String()
}

func aggregateStats(rows []projectStatRow) *ProjectStats {
	stats := &ProjectStats{TotalProjects: int64(len(rows))}

	var totalDays float64
	var measured int

	for _, row := range rows {
		switch projects_enums.ProjectStatus(row.Status) {
		case projects_enums.ProjectStatusActive:
			stats.ActiveProjects++
		case projects_enums.ProjectStatusCompleted:
			stats.CompletedProjects++

			if row.StartDate != nil && row.CompletedAt != nil && !row.CompletedAt.Before(*row.StartDate) {
				totalDays += row.CompletedAt.Sub(*row.StartDate).Hours() / 24
				measured++
			}
		}
	}

	if measured > 0 {
		stats.AvgCompletionTime = math.Round(totalDays/float64(measured)*10) / 10
	}

	return stats
}

func bucketByMonth(events []*AnalyticsEvent, since, until time.Time) []TimelinePoint {
	points := make([]TimelinePoint, 0)
	index := make(map[string]int)

	month := time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !month.After(until) {
		key := month.Format("2006-01")
		index[key] = len(points)
		points = append(points, TimelinePoint{Month: key})
		month = month.AddDate(0, 1, 0)
	}

	for _, event := range events {
		i, ok := index[event.CreatedAt.UTC().Format("2006-01")]
		if !ok {
			continue
		}

		switch event.EventType {
		case EventProjectCreated:
			points[i].Created++
		case EventProjectCompleted:
			points[i].Completed++
		}
	}

	return points
}
