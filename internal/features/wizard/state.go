package wizard

import (
	projects_enums "creativeflow/internal/features/projects/enums"
)

type Step int

const (
	StepBrandInformation Step = iota + 1
	StepProjectDetails
	StepAssetUpload
	StepReview
)

func (s Step) Title() string {
	switch s {
	case StepBrandInformation:
		return "Brand Information"
	case StepProjectDetails:
		return "Project Details"
	case StepAssetUpload:
		return "Asset Upload"
	case StepReview:
		return "Review"
	default:
		return ""
	}
}

type Field string

const (
	FieldBrandName        Field = "brandName"
	FieldIndustry         Field = "industry"
	FieldBrandDescription Field = "brandDescription"
	FieldName             Field = "name"
	FieldObjectives       Field = "objectives"
	FieldTargetAudience   Field = "targetAudience"
	FieldStartDate        Field = "startDate"
	FieldDeadline         Field = "deadline"
	FieldProgress         Field = "progress"
	FieldStatus           Field = "status"
)

// fieldSteps maps each field to the step whose form shows it.
var fieldSteps = map[Field]Step{
	FieldBrandName:        StepBrandInformation,
	FieldIndustry:         StepBrandInformation,
	FieldBrandDescription: StepBrandInformation,
	FieldName:             StepProjectDetails,
	FieldObjectives:       StepProjectDetails,
	FieldTargetAudience:   StepProjectDetails,
	FieldStartDate:        StepProjectDetails,
	FieldDeadline:         StepProjectDetails,
	FieldProgress:         StepReview,
	FieldStatus:           StepReview,
}

var Industries = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Retail",
	"Education",
	"Entertainment",
	"Manufacturing",
	"Real Estate",
	"Food & Beverage",
	"Other",
}

type FormData struct {
	BrandName        string                       `json:"brandName"`
	Industry         string                       `json:"industry"`
	BrandDescription string                       `json:"brandDescription"`
	Name             string                       `json:"name"`
	Objectives       string                       `json:"objectives"`
	TargetAudience   string                       `json:"targetAudience"`
	StartDate        string                       `json:"startDate"`
	Deadline         string                       `json:"deadline"`
	Progress         int                          `json:"progress"`
	Status           projects_enums.ProjectStatus `json:"status"`
}

// AssetDescriptor describes a file picked at the asset step. Bytes stay with
// the caller and are never part of the creation request.
type AssetDescriptor struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// State is everything the wizard knows. It round-trips through JSON so a
// caller can persist or pass it around.
type State struct {
	Step        Step              `json:"step"`
	Data        FormData          `json:"data"`
	Errors      map[string]string `json:"errors"`
	Assets      []AssetDescriptor `json:"assets"`
	SubmitError string            `json:"submitError,omitempty"`
	Submitted   bool              `json:"submitted"`
}

func NewState() State {
	return State{
		Step: StepBrandInformation,
		Data: FormData{
			Status:   projects_enums.ProjectStatusPlanning,
			Progress: 0,
		},
		Errors: map[string]string{},
		Assets: []AssetDescriptor{},
	}
}
