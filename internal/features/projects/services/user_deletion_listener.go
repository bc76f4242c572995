package projects_services

import (
	"fmt"

	projects_repositories "creativeflow/internal/features/projects/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDeletionListener drops the memberships of a deleted user and clears it
// as creator and uploader. Projects and assets stay.
type UserDeletionListener struct {
	projectRepository *projects_repositories.ProjectRepository
	memberRepository  *projects_repositories.MemberRepository
	assetRepository   *projects_repositories.AssetRepository
	projectService    *ProjectService
}

func (l *UserDeletionListener) OnBeforeUserDeletion(tx *gorm.DB, userID uuid.UUID) error {
	if err := l.memberRepository.DeleteUserMemberships(tx, userID); err != nil {
		return fmt.Errorf("failed to delete user memberships: %w", err)
	}
	if err := l.projectRepository.ClearCreator(tx, userID); err != nil {
		return fmt.Errorf("failed to clear project creator: %w", err)
	}
	if err := l.assetRepository.ClearUploader(tx, userID); err != nil {
		return fmt.Errorf("failed to clear asset uploader: %w", err)
	}

	l.projectService.eventRecorder.InvalidateStats(userID)

	return nil
}
