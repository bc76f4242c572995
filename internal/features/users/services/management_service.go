package users_services

import (
	"fmt"
	"time"

	user_dto "creativeflow/internal/features/users/dto"
	user_enums "creativeflow/internal/features/users/enums"
	user_interfaces "creativeflow/internal/features/users/interfaces"
	user_models "creativeflow/internal/features/users/models"
	user_repositories "creativeflow/internal/features/users/repositories"
	"creativeflow/internal/storage"
	"creativeflow/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserManagementService struct {
	userRepository        *user_repositories.UserRepository
	userService           *UserService
	eventWriter           user_interfaces.EventWriter
	userDeletionListeners []user_interfaces.UserDeletionListener
}

func (s *UserManagementService) SetEventWriter(writer user_interfaces.EventWriter) {
	s.eventWriter = writer
}

func (s *UserManagementService) AddUserDeletionListener(listener user_interfaces.UserDeletionListener) {
	s.userDeletionListeners = append(s.userDeletionListeners, listener)
}

func (s *UserManagementService) GetUsers(
	currentUser *user_models.User,
	limit, offset int,
	beforeCreatedAt *time.Time,
) ([]*user_models.User, int64, error) {
	if !currentUser.CanManageUsers() {
		return nil, 0, fmt.Errorf("insufficient permissions to list users: %w", app_errors.ErrForbidden)
	}

	return s.userRepository.GetUsers(limit, offset, beforeCreatedAt)
}

func (s *UserManagementService) GetUserProfile(
	userID uuid.UUID,
	requestedBy *user_models.User,
) (*user_models.User, error) {
	// Users can view their own profile, admins can view any profile
	if userID != requestedBy.ID && !requestedBy.CanManageUsers() {
		return nil, fmt.Errorf("insufficient permissions to view user profile: %w", app_errors.ErrForbidden)
	}

	return s.userService.GetUserByID(userID)
}

func (s *UserManagementService) UpdateUser(
	userID uuid.UUID,
	request *user_dto.UpdateUserRequestDTO,
	updatedBy *user_models.User,
) (*user_models.User, error) {
	if !updatedBy.CanManageUsers() {
		return nil, fmt.Errorf("insufficient permissions to update users: %w", app_errors.ErrForbidden)
	}

	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	firstName, lastName, profileImageURL := user.FirstName, user.LastName, user.ProfileImageURL
	if request.FirstName != nil {
		firstName = request.FirstName
	}
	if request.LastName != nil {
		lastName = request.LastName
	}
	if request.ProfileImageURL != nil {
		profileImageURL = request.ProfileImageURL
	}

	if err := s.userRepository.UpdateUserProfile(userID, firstName, lastName, profileImageURL); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.userService.GetUserByID(userID)
}

func (s *UserManagementService) ChangeUserRole(
	userID uuid.UUID,
	newRole user_enums.UserRole,
	changedBy *user_models.User,
) (*user_models.User, error) {
	if !changedBy.CanManageUsers() {
		return nil, fmt.Errorf("insufficient permissions to change user roles: %w", app_errors.ErrForbidden)
	}

	if !newRole.IsValid() {
		return nil, app_errors.NewFieldError("role", "Role must be user or admin")
	}

	if userID == changedBy.ID {
		return nil, app_errors.NewFieldError("role", "You cannot change your own role")
	}

	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepository.UpdateUserRole(userID, newRole); err != nil {
		return nil, fmt.Errorf("failed to change user role: %w", err)
	}

	if s.eventWriter != nil {
		s.eventWriter.WriteEvent(
			"user_role_changed",
			&changedBy.ID,
			nil,
			map[string]any{"userId": user.ID.String(), "email": user.Email, "role": string(newRole)},
		)
	}

	user.Role = newRole
	return user, nil
}

// DeleteUser removes the user together with its memberships. Projects and
// assets keep existing with their creator/uploader cleared.
func (s *UserManagementService) DeleteUser(userID uuid.UUID, deletedBy *user_models.User) error {
	if !deletedBy.CanManageUsers() {
		return fmt.Errorf("insufficient permissions to delete users: %w", app_errors.ErrForbidden)
	}

	if userID == deletedBy.ID {
		return app_errors.NewFieldError("id", "You cannot delete your own account")
	}

	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		for _, listener := range s.userDeletionListeners {
			if err := listener.OnBeforeUserDeletion(tx, userID); err != nil {
				return err
			}
		}

		return s.userRepository.DeleteUser(tx, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if s.eventWriter != nil {
		s.eventWriter.WriteEvent(
			"user_deleted",
			&deletedBy.ID,
			nil,
			map[string]any{"userId": user.ID.String(), "email": user.Email},
		)
	}

	return nil
}
