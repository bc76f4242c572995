package contact

import (
	"errors"

	"creativeflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository struct{}

func (r *ContactRepository) Create(submission *ContactSubmission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}

	return storage.GetDb().Create(submission).Error
}

// GetByID returns nil, nil when the submission does not exist.
func (r *ContactRepository) GetByID(id uuid.UUID) (*ContactSubmission, error) {
	var submission ContactSubmission

	if err := storage.GetDb().Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &submission, nil
}

func (r *ContactRepository) GetSubmissions(status *SubmissionStatus, limit, offset int) ([]*ContactSubmission, error) {
	submissions := make([]*ContactSubmission, 0)

	err := r.filtered(status).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error

	return submissions, err
}

func (r *ContactRepository) CountSubmissions(status *SubmissionStatus) (int64, error) {
	var count int64

	err := r.filtered(status).Model(&ContactSubmission{}).Count(&count).Error

	return count, err
}

func (r *ContactRepository) UpdateStatus(id uuid.UUID, status SubmissionStatus) error {
	return storage.GetDb().
		Model(&ContactSubmission{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ContactRepository) filtered(status *SubmissionStatus) *gorm.DB {
	query := storage.GetDb()
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	return query
}
