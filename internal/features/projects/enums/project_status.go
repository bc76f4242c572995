package projects_enums

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusReview    ProjectStatus = "review"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning,
		ProjectStatusActive,
		ProjectStatusReview,
		ProjectStatusCompleted,
		ProjectStatusArchived:
		return true
	default:
		return false
	}
}
