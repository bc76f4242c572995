package users_identity

import (
	"fmt"
	"net/http"

	users_interfaces "creativeflow/internal/features/users/interfaces"
	users_models "creativeflow/internal/features/users/models"
	"creativeflow/internal/util/app_errors"
)

// ChainVerifier returns the first identity any of its verifiers resolves.
type ChainVerifier struct {
	verifiers []users_interfaces.IdentityVerifier
}

func NewChainVerifier(verifiers ...users_interfaces.IdentityVerifier) *ChainVerifier {
	return &ChainVerifier{verifiers: verifiers}
}

func (v *ChainVerifier) Verify(r *http.Request) (*users_models.User, error) {
	for _, verifier := range v.verifiers {
		user, err := verifier.Verify(r)
		if err == nil && user != nil {
			return user, nil
		}
	}

	return nil, fmt.Errorf("no identity: %w", app_errors.ErrUnauthorized)
}

// StaticVerifier always resolves to User, or rejects every request when User
// is nil. Used to run handlers without a session.
type StaticVerifier struct {
	User *users_models.User
}

func (v *StaticVerifier) Verify(_ *http.Request) (*users_models.User, error) {
	if v.User == nil {
		return nil, fmt.Errorf("static verifier has no user: %w", app_errors.ErrUnauthorized)
	}

	return v.User, nil
}
