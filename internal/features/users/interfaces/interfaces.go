package users_interfaces

import (
	"net/http"

	users_models "creativeflow/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventWriter interface {
	WriteEvent(eventType string, userID *uuid.UUID, projectID *uuid.UUID, data map[string]any)
}

// IdentityVerifier resolves the caller of a request. Implementations return an
// error wrapping app_errors.ErrUnauthorized when the request carries no valid
// identity.
type IdentityVerifier interface {
	Verify(r *http.Request) (*users_models.User, error)
}

// UserDeletionListener runs inside the user deletion transaction.
type UserDeletionListener interface {
	OnBeforeUserDeletion(tx *gorm.DB, userID uuid.UUID) error
}
