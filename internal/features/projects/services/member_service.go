package projects_services

import (
	"errors"
	"fmt"

	"creativeflow/internal/features/analytics"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	projects_repositories "creativeflow/internal/features/projects/repositories"
	users_enums "creativeflow/internal/features/users/enums"
	users_models "creativeflow/internal/features/users/models"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/storage"
	"creativeflow/internal/util/app_errors"

	"github.com/google/uuid"
)

type MemberService struct {
	memberRepository *projects_repositories.MemberRepository
	userService      *users_services.UserService
	projectService   *ProjectService
}

func (s *MemberService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	if _, _, err := s.projectService.getAccessibleProject(projectID, user); err != nil {
		return nil, err
	}

	members, err := s.memberRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	return &projects_dto.GetMembersResponseDTO{Members: members}, nil
}

// AddMember adds an existing user by email. Only the project owner or a
// global admin may add project admins.
func (s *MemberService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	_, role, err := s.projectService.getManageableProject(projectID, addedBy)
	if err != nil {
		return nil, err
	}

	if request.Role == users_enums.ProjectRoleAdmin && !addedBy.IsAdmin() &&
		(role == nil || *role != users_enums.ProjectRoleOwner) {
		return nil, fmt.Errorf("only project owner can add admins: %w", app_errors.ErrForbidden)
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, app_errors.ErrNotFound) {
			return nil, app_errors.NewFieldError("email", "No user with this email")
		}

		return nil, err
	}

	existing, err := s.memberRepository.GetMember(projectID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user is already a member of this project: %w", app_errors.ErrConflict)
	}

	member := &projects_models.ProjectMember{
		ProjectID: projectID,
		UserID:    targetUser.ID,
		Role:      request.Role,
	}
	if err := s.memberRepository.CreateMember(storage.GetDb(), member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.projectService.writeEvent(
		analytics.EventMemberAdded,
		&addedBy.ID,
		&projectID,
		map[string]any{"userId": targetUser.ID.String(), "email": targetUser.Email, "role": string(request.Role)},
	)
	s.projectService.eventRecorder.InvalidateStats(targetUser.ID)

	return &projects_dto.ProjectMemberResponseDTO{
		ID:        member.ID,
		UserID:    targetUser.ID,
		Email:     targetUser.Email,
		FirstName: targetUser.FirstName,
		LastName:  targetUser.LastName,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
	}, nil
}

// RemoveMember never removes the owner. Removing a project admin requires
// the owner or a global admin.
func (s *MemberService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	_, role, err := s.projectService.getManageableProject(projectID, removedBy)
	if err != nil {
		return err
	}

	member, err := s.memberRepository.GetMember(projectID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return fmt.Errorf("member %w", app_errors.ErrNotFound)
	}

	if member.Role == users_enums.ProjectRoleOwner {
		return app_errors.NewFieldError("userId", "Project owner cannot be removed")
	}

	if member.Role == users_enums.ProjectRoleAdmin && !removedBy.IsAdmin() &&
		(role == nil || *role != users_enums.ProjectRoleOwner) {
		return fmt.Errorf("only project owner can remove admins: %w", app_errors.ErrForbidden)
	}

	if err := s.memberRepository.RemoveMember(projectID, memberUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.projectService.writeEvent(
		analytics.EventMemberRemoved,
		&removedBy.ID,
		&projectID,
		map[string]any{"userId": memberUserID.String()},
	)
	s.projectService.eventRecorder.InvalidateStats(memberUserID)

	return nil
}
