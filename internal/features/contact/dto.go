package contact

type CreateSubmissionRequest struct {
	FirstName  string  `json:"firstName"  validate:"required,max=100"`
	LastName   string  `json:"lastName"   validate:"required,max=100"`
	Email      string  `json:"email"      validate:"required,email,max=255"`
	Company    *string `json:"company"    validate:"omitempty,max=255"`
	Subject    string  `json:"subject"    validate:"required,max=100"`
	Message    string  `json:"message"    validate:"required,min=10"`
	Newsletter bool    `json:"newsletter"`
}

func (CreateSubmissionRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"firstName.required": "First name is required",
		"firstName.max":      "First name must be at most 100 characters",
		"lastName.required":  "Last name is required",
		"lastName.max":       "Last name must be at most 100 characters",
		"email.required":     "Valid email is required",
		"email.max":          "Email must be at most 255 characters",
		"company.max":        "Company must be at most 255 characters",
		"subject.required":   "Subject is required",
		"subject.max":        "Subject must be at most 100 characters",
		"message.required":   "Message must be at least 10 characters",
		"message.min":        "Message must be at least 10 characters",
	}
}

type GetSubmissionsRequest struct {
	Limit  int    `form:"limit"  json:"limit"`
	Offset int    `form:"offset" json:"offset"`
	Status string `form:"status" json:"status"`
}

type GetSubmissionsResponse struct {
	Submissions []*ContactSubmission `json:"submissions"`
	Total       int64                `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

type UpdateStatusRequest struct {
	Status SubmissionStatus `json:"status" validate:"required,oneof=new replied closed"`
}

func (UpdateStatusRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"status.required": "Status is required",
		"status.oneof":    "Status must be one of new, replied, closed",
	}
}
