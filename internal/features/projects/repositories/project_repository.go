package projects_repositories

import (
	"time"

	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	"creativeflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(tx *gorm.DB, project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = now
	}

	return tx.Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// UpdateProject writes every column of project. Concurrent writers follow
// last write wins.
func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	project.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) DeleteProject(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("id = ?", projectID).Delete(&projects_models.Project{}).Error
}

// GetProjectsByMember returns the projects userID belongs to with its role,
// most recently updated first.
func (r *ProjectRepository) GetProjectsByMember(userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := storage.GetDb().
		Table("projects p").
		Select("p.*, pm.role AS user_role").
		Joins("JOIN project_members pm ON pm.project_id = p.id").
		Where("pm.user_id = ?", userID).
		Order("p.updated_at DESC").
		Scan(&results).Error

	return results, err
}

// GetAllProjects returns every project newest first. userID's role is filled
// for projects it belongs to.
func (r *ProjectRepository) GetAllProjects(userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := storage.GetDb().
		Table("projects p").
		Select("p.*, pm.role AS user_role").
		Joins("LEFT JOIN project_members pm ON pm.project_id = p.id AND pm.user_id = ?", userID).
		Order("p.created_at DESC").
		Scan(&results).Error

	return results, err
}

// ClearCreator detaches the projects created by userID from it.
func (r *ProjectRepository) ClearCreator(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&projects_models.Project{}).
		Where("created_by = ?", userID).
		Update("created_by", nil).Error
}
