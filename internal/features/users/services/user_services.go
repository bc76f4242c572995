package users_services

import (
	"errors"
	"fmt"

	"creativeflow/internal/config"
	users_enums "creativeflow/internal/features/users/enums"
	users_interfaces "creativeflow/internal/features/users/interfaces"
	users_models "creativeflow/internal/features/users/models"
	users_repositories "creativeflow/internal/features/users/repositories"
	"creativeflow/internal/util/app_errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository *users_repositories.UserRepository
	// nil until analytics.SetupDependencies runs
	eventWriter users_interfaces.EventWriter
}

func (s *UserService) SetEventWriter(writer users_interfaces.EventWriter) {
	s.eventWriter = writer
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", app_errors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, fmt.Errorf("user %w", app_errors.ErrNotFound)
	}

	return user, nil
}

// UpsertIdentity stores the profile reported by the identity provider. New
// users get defaultRole, existing users keep theirs.
func (s *UserService) UpsertIdentity(
	email string,
	firstName, lastName, profileImageURL *string,
	defaultRole users_enums.UserRole,
) (*users_models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("identity without email: %w", app_errors.ErrUnauthorized)
	}

	if !defaultRole.IsValid() {
		defaultRole = users_enums.UserRoleUser
	}

	user, err := s.userRepository.UpsertByEmail(&users_models.User{
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		ProfileImageURL: profileImageURL,
		Role:            defaultRole,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return user, nil
}

// EnsureDevUser creates or refreshes the development user used by the mocked
// login flow.
func (s *UserService) EnsureDevUser() (*users_models.User, error) {
	env := config.GetEnv()

	firstName := env.DevUserFirstName
	lastName := env.DevUserLastName

	return s.UpsertIdentity(
		env.DevUserEmail,
		&firstName,
		&lastName,
		nil,
		users_enums.UserRole(env.DevUserRole),
	)
}

// SetUserRoleByEmail is used by the CLI to promote the first admin.
func (s *UserService) SetUserRoleByEmail(email string, role users_enums.UserRole) error {
	if !role.IsValid() {
		return app_errors.NewFieldError("role", "Role must be user or admin")
	}

	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}

	if err := s.userRepository.UpdateUserRole(user.ID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	if s.eventWriter != nil {
		s.eventWriter.WriteEvent(
			"user_role_changed",
			&user.ID,
			nil,
			map[string]any{"email": user.Email, "role": string(role), "source": "cli"},
		)
	}

	return nil
}
