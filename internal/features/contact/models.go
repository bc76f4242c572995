package contact

import (
	"time"

	"creativeflow/internal/storage"

	"github.com/google/uuid"
)

type ContactSubmission struct {
	ID         uuid.UUID        `json:"id"         gorm:"column:id;primaryKey"`
	FirstName  string           `json:"firstName"  gorm:"column:first_name;size:100;not null"`
	LastName   string           `json:"lastName"   gorm:"column:last_name;size:100;not null"`
	Email      string           `json:"email"      gorm:"column:email;size:255;not null"`
	Company    *string          `json:"company"    gorm:"column:company;size:255"`
	Subject    string           `json:"subject"    gorm:"column:subject;size:100;not null"`
	Message    string           `json:"message"    gorm:"column:message;not null"`
	Newsletter bool             `json:"newsletter" gorm:"column:newsletter;default:false"`
	Status     SubmissionStatus `json:"status"     gorm:"column:status;size:20;default:new"`
	CreatedAt  time.Time        `json:"createdAt"  gorm:"column:created_at;index"`
}

func init() {
	storage.RegisterModels(&ContactSubmission{})
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
