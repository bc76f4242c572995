package projects_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"creativeflow/internal/features/analytics"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_enums "creativeflow/internal/features/projects/enums"
	projects_interfaces "creativeflow/internal/features/projects/interfaces"
	projects_models "creativeflow/internal/features/projects/models"
	projects_repositories "creativeflow/internal/features/projects/repositories"
	users_enums "creativeflow/internal/features/users/enums"
	users_models "creativeflow/internal/features/users/models"
	"creativeflow/internal/storage"
	"creativeflow/internal/util/app_errors"
	time_parser "creativeflow/internal/util/time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepository *projects_repositories.ProjectRepository
	memberRepository  *projects_repositories.MemberRepository
	assetRepository   *projects_repositories.AssetRepository
	eventRecorder     projects_interfaces.EventRecorder
	fileStore         projects_interfaces.AssetFileStore
	logger            *slog.Logger
}

// CreateProject stores the project, the creator's owner membership and the
// project_created event in one transaction.
func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := time_parser.ParseDatePtr(request.StartDate)
	deadline, _ := time_parser.ParseDatePtr(request.Deadline)

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:               uuid.New(),
		Name:             request.Name,
		Description:      request.Description,
		Status:           projects_enums.ProjectStatusPlanning,
		BrandName:        &request.BrandName,
		BrandDescription: request.BrandDescription,
		Industry:         &request.Industry,
		Objectives:       request.Objectives,
		TargetAudience:   request.TargetAudience,
		StartDate:        startDate,
		Deadline:         deadline,
		CreatedBy:        &creator.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if request.Status != nil {
		project.Status = *request.Status
	}
	if request.Progress != nil {
		project.Progress = *request.Progress
	}
	if project.IsCompleted() {
		project.CompletedAt = &now
	}

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.CreateProject(tx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		owner := &projects_models.ProjectMember{
			ProjectID: project.ID,
			UserID:    creator.ID,
			Role:      users_enums.ProjectRoleOwner,
			JoinedAt:  now,
		}
		if err := s.memberRepository.CreateMember(tx, owner); err != nil {
			return fmt.Errorf("failed to create project owner: %w", err)
		}

		return s.eventRecorder.RecordEvent(
			tx,
			analytics.EventProjectCreated,
			&creator.ID,
			&project.ID,
			map[string]any{"name": project.Name, "status": string(project.Status)},
		)
	})
	if err != nil {
		return nil, err
	}

	s.eventRecorder.InvalidateStats(creator.ID)

	ownerRole := users_enums.ProjectRoleOwner
	return &projects_dto.ProjectResponseDTO{
		Project:  *project,
		UserRole: &ownerRole,
	}, nil
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	var (
		projects []projects_dto.ProjectResponseDTO
		err      error
	)

	if user.IsAdmin() {
		projects, err = s.projectRepository.GetAllProjects(user.ID)
	} else {
		projects, err = s.projectRepository.GetProjectsByMember(user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: projects}, nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*projects_dto.ProjectResponseDTO, error) {
	project, role, err := s.getAccessibleProject(projectID, user)
	if err != nil {
		return nil, err
	}

	return &projects_dto.ProjectResponseDTO{Project: *project, UserRole: role}, nil
}

// UpdateProject applies the non-nil fields of request. Moving to completed
// stamps completedAt and records project_completed; leaving completed clears
// it.
func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	project, role, err := s.getManageableProject(projectID, user)
	if err != nil {
		return nil, err
	}

	changed, err := applyProjectUpdate(project, request)
	if err != nil {
		return nil, err
	}

	wasCompleted := project.CompletedAt != nil
	now := time.Now().UTC()

	switch {
	case project.IsCompleted() && !wasCompleted:
		project.CompletedAt = &now
	case !project.IsCompleted():
		project.CompletedAt = nil
	}

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.writeEvent(analytics.EventProjectUpdated, &user.ID, &project.ID, map[string]any{"fields": changed})
	if project.IsCompleted() && !wasCompleted {
		s.writeEvent(analytics.EventProjectCompleted, &user.ID, &project.ID, map[string]any{"name": project.Name})
	}

	s.invalidateProjectStats(project.ID)

	return &projects_dto.ProjectResponseDTO{Project: *project, UserRole: role}, nil
}

// DeleteProject removes assets, memberships and the project in one
// transaction, then the stored asset files.
func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	project, role, err := s.getAccessibleProject(projectID, user)
	if err != nil {
		return err
	}

	if !user.IsAdmin() && (role == nil || *role != users_enums.ProjectRoleOwner) {
		return fmt.Errorf("only project owner or admin can delete project: %w", app_errors.ErrForbidden)
	}

	var memberIDs []uuid.UUID

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		ids, err := s.memberRepository.GetMemberUserIDsTx(tx, projectID)
		if err != nil {
			return fmt.Errorf("failed to get project members: %w", err)
		}
		memberIDs = ids

		if err := s.assetRepository.DeleteProjectAssets(tx, projectID); err != nil {
			return fmt.Errorf("failed to delete project assets: %w", err)
		}
		if err := s.memberRepository.DeleteProjectMembers(tx, projectID); err != nil {
			return fmt.Errorf("failed to delete project members: %w", err)
		}
		if err := s.projectRepository.DeleteProject(tx, projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		return s.eventRecorder.RecordEvent(
			tx,
			analytics.EventProjectDeleted,
			&user.ID,
			&projectID,
			map[string]any{"name": project.Name},
		)
	})
	if err != nil {
		return err
	}

	if err := s.fileStore.DeleteProject(projectID); err != nil {
		s.logger.Error("failed to remove project files", "projectId", projectID, "error", err)
	}

	s.eventRecorder.InvalidateStats(memberIDs...)

	return nil
}

func (s *ProjectService) GetUserProjectRole(projectID, userID uuid.UUID) (*users_enums.ProjectRole, error) {
	return s.memberRepository.GetUserProjectRole(projectID, userID)
}

// getAccessibleProject returns ErrNotFound for a missing project and
// ErrForbidden when user is neither a member nor an admin.
func (s *ProjectService) getAccessibleProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_models.Project, *users_enums.ProjectRole, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("project %w", app_errors.ErrNotFound)
		}

		return nil, nil, fmt.Errorf("failed to get project: %w", err)
	}

	role, err := s.memberRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get project role: %w", err)
	}

	if role == nil && !user.IsAdmin() {
		return nil, nil, fmt.Errorf("insufficient permissions to view project: %w", app_errors.ErrForbidden)
	}

	return project, role, nil
}

// getManageableProject additionally requires the owner or admin project role
// unless user is a global admin.
func (s *ProjectService) getManageableProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_models.Project, *users_enums.ProjectRole, error) {
	project, role, err := s.getAccessibleProject(projectID, user)
	if err != nil {
		return nil, nil, err
	}

	if !user.IsAdmin() && (role == nil || !role.CanManageProject()) {
		return nil, nil, fmt.Errorf("insufficient permissions to manage project: %w", app_errors.ErrForbidden)
	}

	return project, role, nil
}

func (s *ProjectService) writeEvent(eventType string, userID, projectID *uuid.UUID, data map[string]any) {
	if err := s.eventRecorder.RecordEvent(nil, eventType, userID, projectID, data); err != nil {
		s.logger.Error("failed to write analytics event", "eventType", eventType, "error", err)
	}
}

func (s *ProjectService) invalidateProjectStats(projectID uuid.UUID) {
	memberIDs, err := s.memberRepository.GetMemberUserIDs(projectID)
	if err != nil {
		s.logger.Error("failed to get project members", "projectId", projectID, "error", err)
	}

	s.eventRecorder.InvalidateStats(memberIDs...)
}

func applyProjectUpdate(project *projects_models.Project, request *projects_dto.UpdateProjectRequestDTO) ([]string, error) {
	changed := make([]string, 0)

	if request.Name != nil {
		project.Name = *request.Name
		changed = append(changed, "name")
	}
	if request.Description != nil {
		project.Description = request.Description
		changed = append(changed, "description")
	}
	if request.Status != nil {
		project.Status = *request.Status
		changed = append(changed, "status")
	}
	if request.Progress != nil {
		project.Progress = *request.Progress
		changed = append(changed, "progress")
	}
	if request.BrandName != nil {
		project.BrandName = request.BrandName
		changed = append(changed, "brandName")
	}
	if request.BrandDescription != nil {
		project.BrandDescription = request.BrandDescription
		changed = append(changed, "brandDescription")
	}
	if request.Industry != nil {
		project.Industry = request.Industry
		changed = append(changed, "industry")
	}
	if request.Objectives != nil {
		project.Objectives = request.Objectives
		changed = append(changed, "objectives")
	}
	if request.TargetAudience != nil {
		project.TargetAudience = request.TargetAudience
		changed = append(changed, "targetAudience")
	}
	if request.StartDate != nil {
		startDate, err := time_parser.ParseDate(*request.StartDate)
		if err != nil {
			return nil, app_errors.NewFieldError("startDate", "Start date must be a YYYY-MM-DD date")
		}
		project.StartDate = startDate
		changed = append(changed, "startDate")
	}
	if request.Deadline != nil {
		deadline, err := time_parser.ParseDate(*request.Deadline)
		if err != nil {
			return nil, app_errors.NewFieldError("deadline", "Deadline must be a YYYY-MM-DD date")
		}
		project.Deadline = deadline
		changed = append(changed, "deadline")
	}

	if project.StartDate != nil && project.Deadline != nil && project.Deadline.Before(*project.StartDate) {
		return nil, app_errors.NewFieldError("deadline", "Deadline cannot be before the start date")
	}

	return changed, nil
}
