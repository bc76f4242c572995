package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "creativeflow/internal/features/users/dto"
	users_enums "creativeflow/internal/features/users/enums"
	users_identity "creativeflow/internal/features/users/identity"
	users_models "creativeflow/internal/features/users/models"
	users_repositories "creativeflow/internal/features/users/repositories"

	"github.com/google/uuid"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.AccessTokenResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])
	firstName := "Test"
	lastName := strings.ToUpper(string(role[:1])) + string(role[1:])

	user := &users_models.User{
		ID:        userID,
		Email:     email,
		FirstName: &firstName,
		LastName:  &lastName,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	return IssueToken(user)
}

func IssueToken(user *users_models.User) *users_dto.AccessTokenResponseDTO {
	response, err := users_identity.GetTokenVerifier().IssueToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func GetTestUser(userID uuid.UUID) *users_models.User {
	userRepository := &users_repositories.UserRepository{}

	user, err := userRepository.GetUserByID(userID)
	if err != nil {
		panic(err)
	}

	return user
}
