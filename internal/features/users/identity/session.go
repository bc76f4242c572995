package users_identity

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	users_models "creativeflow/internal/features/users/models"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/util/app_errors"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	SessionName = "creativeflow-session"
	SessionTTL  = time.Hour

	sessionKeyUserID    = "user_id"
	sessionKeyExpiresAt = "expires_at"
)

// SessionVerifier authenticates requests by the signed and encrypted session
// cookie written on login.
type SessionVerifier struct {
	store       *sessions.CookieStore
	userService *users_services.UserService
}

func NewSessionVerifier(secret string, secure bool, userService *users_services.UserService) *SessionVerifier {
	hashKey, blockKey := deriveSessionKeys(secret)

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionVerifier{
		store:       store,
		userService: userService,
	}
}

func (v *SessionVerifier) Verify(r *http.Request) (*users_models.User, error) {
	session, err := v.store.Get(r, SessionName)
	if err != nil || session.IsNew {
		return nil, fmt.Errorf("no session: %w", app_errors.ErrUnauthorized)
	}

	userIDStr, ok := session.Values[sessionKeyUserID].(string)
	if !ok {
		return nil, fmt.Errorf("session without user: %w", app_errors.ErrUnauthorized)
	}

	expiresAt, ok := session.Values[sessionKeyExpiresAt].(int64)
	if !ok || time.Now().UTC().Unix() >= expiresAt {
		return nil, fmt.Errorf("session expired: %w", app_errors.ErrUnauthorized)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("malformed session: %w", app_errors.ErrUnauthorized)
	}

	user, err := v.userService.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("session user is gone: %w", app_errors.ErrUnauthorized)
	}

	return user, nil
}

// Login writes a session for user valid for SessionTTL.
func (v *SessionVerifier) Login(w http.ResponseWriter, r *http.Request, user *users_models.User) error {
	session, _ := v.store.Get(r, SessionName)

	session.Values[sessionKeyUserID] = user.ID.String()
	session.Values[sessionKeyExpiresAt] = time.Now().UTC().Add(SessionTTL).Unix()
	session.Options.MaxAge = int(SessionTTL.Seconds())

	return session.Save(r, w)
}

// Logout expires the session cookie.
func (v *SessionVerifier) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := v.store.Get(r, SessionName)

	delete(session.Values, sessionKeyUserID)
	delete(session.Values, sessionKeyExpiresAt)
	session.Options.MaxAge = -1

	return session.Save(r, w)
}

func deriveSessionKeys(secret string) ([]byte, []byte) {
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte("creativeflow session cookie"))

	hashKey := make([]byte, 64)
	blockKey := make([]byte, 32)

	if _, err := io.ReadFull(reader, hashKey); err != nil {
		panic(err)
	}
	if _, err := io.ReadFull(reader, blockKey); err != nil {
		panic(err)
	}

	return hashKey, blockKey
}
