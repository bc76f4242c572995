package contact

import (
	"fmt"
	"log/slog"
	"time"

	"creativeflow/internal/features/analytics"
	users_models "creativeflow/internal/features/users/models"
	"creativeflow/internal/util/app_errors"
	rate_limit "creativeflow/internal/util/rate_limit"

	"github.com/google/uuid"
)

const (
	defaultSubmissionsLimit = 50
	maxSubmissionsLimit     = 500
)

type ContactService struct {
	contactRepository *ContactRepository
	analyticsService  *analytics.AnalyticsService
	rateLimiter       *rate_limit.RateLimiter
	perMinute         int
	logger            *slog.Logger
}

// CheckRateLimit consumes one submission slot of clientIP. The returned
// result carries RetryAfterSec when the slot was refused.
func (s *ContactService) CheckRateLimit(clientIP string) (*rate_limit.RateLimitResult, error) {
	result, err := s.rateLimiter.CheckRateLimit(clientIP, s.perMinute, s.perMinute)
	if err != nil {
		// fail open
		s.logger.Error("contact rate limit check failed", "error", err)
		return &rate_limit.RateLimitResult{Allowed: true}, nil
	}

	if !result.Allowed {
		return result, fmt.Errorf("contact form %w", app_errors.ErrTooManyCalls)
	}

	return result, nil
}

func (s *ContactService) CreateSubmission(request *CreateSubmissionRequest) (*ContactSubmission, error) {
	submission := &ContactSubmission{
		ID:         uuid.New(),
		FirstName:  request.FirstName,
		LastName:   request.LastName,
		Email:      request.Email,
		Company:    request.Company,
		Subject:    request.Subject,
		Message:    request.Message,
		Newsletter: request.Newsletter,
		Status:     SubmissionStatusNew,
		CreatedAt:  time.Now().UTC(),
	}

	if submission.Company != nil && *submission.Company == "" {
		submission.Company = nil
	}

	if err := s.contactRepository.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to save contact submission: %w", err)
	}

	s.analyticsService.WriteEvent(
		analytics.EventContactSubmitted,
		nil,
		nil,
		map[string]any{"submissionId": submission.ID.String(), "subject": submission.Subject},
	)

	return submission, nil
}

func (s *ContactService) GetSubmissions(
	user *users_models.User,
	request *GetSubmissionsRequest,
) (*GetSubmissionsResponse, error) {
	if !user.IsAdmin() {
		return nil, fmt.Errorf("only administrators can view contact submissions: %w", app_errors.ErrForbidden)
	}

	var status *SubmissionStatus
	if request.Status != "" {
		parsed := SubmissionStatus(request.Status)
		if !parsed.IsValid() {
			return nil, app_errors.NewFieldError("status", "Status must be one of new, replied, closed")
		}
		status = &parsed
	}

	limit := request.Limit
	if limit <= 0 || limit > maxSubmissionsLimit {
		limit = defaultSubmissionsLimit
	}
	offset := max(request.Offset, 0)

	submissions, err := s.contactRepository.GetSubmissions(status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact submissions: %w", err)
	}

	total, err := s.contactRepository.CountSubmissions(status)
	if err != nil {
		return nil, fmt.Errorf("failed to count contact submissions: %w", err)
	}

	return &GetSubmissionsResponse{
		Submissions: submissions,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (s *ContactService) UpdateStatus(
	id uuid.UUID,
	request *UpdateStatusRequest,
	user *users_models.User,
) (*ContactSubmission, error) {
	if !user.IsAdmin() {
		return nil, fmt.Errorf("only administrators can update contact submissions: %w", app_errors.ErrForbidden)
	}

	submission, err := s.contactRepository.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact submission: %w", err)
	}
	if submission == nil {
		return nil, fmt.Errorf("contact submission %w", app_errors.ErrNotFound)
	}

	if err := s.contactRepository.UpdateStatus(id, request.Status); err != nil {
		return nil, fmt.Errorf("failed to update contact submission: %w", err)
	}

	submission.Status = request.Status

	return submission, nil
}
