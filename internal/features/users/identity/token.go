package users_identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	users_dto "creativeflow/internal/features/users/dto"
	users_enums "creativeflow/internal/features/users/enums"
	users_models "creativeflow/internal/features/users/models"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/util/app_errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 24 * time.Hour

// TokenVerifier accepts HS256 bearer tokens issued by the identity provider
// (or by IssueToken). Unknown subjects are registered from the token claims.
type TokenVerifier struct {
	secret      []byte
	ttl         time.Duration
	userService *users_services.UserService
}

func NewTokenVerifier(secret string, ttl time.Duration, userService *users_services.UserService) *TokenVerifier {
	return &TokenVerifier{
		secret:      []byte(secret),
		ttl:         ttl,
		userService: userService,
	}
}

func (v *TokenVerifier) Verify(r *http.Request) (*users_models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, fmt.Errorf("no bearer token: %w", app_errors.ErrUnauthorized)
	}

	token := strings.TrimPrefix(header, "Bearer ")

	return v.VerifyToken(token)
}

func (v *TokenVerifier) VerifyToken(token string) (*users_models.User, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, app_errors.ErrUnauthorized)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token: %w", app_errors.ErrUnauthorized)
	}

	userIDStr, _ := claims["sub"].(string)
	if userID, err := uuid.Parse(userIDStr); err == nil {
		user, err := v.userService.GetUserByID(userID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, app_errors.ErrNotFound) {
			return nil, err
		}
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("invalid token claims: %w", app_errors.ErrUnauthorized)
	}

	return v.userService.UpsertIdentity(
		email,
		optionalClaim(claims, "first_name"),
		optionalClaim(claims, "last_name"),
		optionalClaim(claims, "picture"),
		users_enums.UserRoleUser,
	)
}

func (v *TokenVerifier) IssueToken(user *users_models.User) (*users_dto.AccessTokenResponseDTO, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   now.Add(v.ttl).Unix(),
		"iat":   now.Unix(),
	}
	if user.FirstName != nil {
		claims["first_name"] = *user.FirstName
	}
	if user.LastName != nil {
		claims["last_name"] = *user.LastName
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.AccessTokenResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func optionalClaim(claims jwt.MapClaims, name string) *string {
	value, ok := claims[name].(string)
	if !ok || value == "" {
		return nil
	}

	return &value
}
