package projects_repositories

import (
	"errors"
	"time"

	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	users_enums "creativeflow/internal/features/users/enums"
	"creativeflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func (r *MemberRepository) CreateMember(tx *gorm.DB, member *projects_models.ProjectMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}

	return tx.Create(member).Error
}

// GetMember returns nil, nil when userID is not a member of projectID.
func (r *MemberRepository) GetMember(projectID, userID uuid.UUID) (*projects_models.ProjectMember, error) {
	var member projects_models.ProjectMember

	err := storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

func (r *MemberRepository) GetUserProjectRole(projectID, userID uuid.UUID) (*users_enums.ProjectRole, error) {
	member, err := r.GetMember(projectID, userID)
	if err != nil || member == nil {
		return nil, err
	}

	return &member.Role, nil
}

func (r *MemberRepository) GetProjectMembers(projectID uuid.UUID) ([]projects_dto.ProjectMemberResponseDTO, error) {
	members := make([]projects_dto.ProjectMemberResponseDTO, 0)

	err := storage.GetDb().
		Table("project_members pm").
		Select("pm.id, pm.user_id, u.email, u.first_name, u.last_name, pm.role, pm.joined_at").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.joined_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MemberRepository) GetMemberUserIDs(projectID uuid.UUID) ([]uuid.UUID, error) {
	return r.getMemberUserIDs(storage.GetDb(), projectID)
}

func (r *MemberRepository) GetMemberUserIDsTx(tx *gorm.DB, projectID uuid.UUID) ([]uuid.UUID, error) {
	return r.getMemberUserIDs(tx, projectID)
}

func (r *MemberRepository) RemoveMember(projectID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projects_models.ProjectMember{}).Error
}

func (r *MemberRepository) DeleteProjectMembers(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("project_id = ?", projectID).Delete(&projects_models.ProjectMember{}).Error
}

func (r *MemberRepository) DeleteUserMemberships(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&projects_models.ProjectMember{}).Error
}

// GetUserProjectIDs lists the projects userID is a member of.
func (r *MemberRepository) GetUserProjectIDs(tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	projectIDs := make([]uuid.UUID, 0)

	err := tx.Model(&projects_models.ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &projectIDs).Error

	return projectIDs, err
}

func (r *MemberRepository) getMemberUserIDs(tx *gorm.DB, projectID uuid.UUID) ([]uuid.UUID, error) {
	userIDs := make([]uuid.UUID, 0)

	err := tx.Model(&projects_models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &userIDs).Error

	return userIDs, err
}
