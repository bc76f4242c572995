package users_identity

import (
	"creativeflow/internal/config"
	users_services "creativeflow/internal/features/users/services"
	env_utils "creativeflow/internal/util/env"
)

var sessionVerifier = NewSessionVerifier(
	config.GetEnv().SessionSecret,
	config.GetEnv().EnvMode == env_utils.EnvModeProduction,
	users_services.GetUserService(),
)

var tokenVerifier = NewTokenVerifier(
	config.GetEnv().JwtSecret,
	DefaultTokenTTL,
	users_services.GetUserService(),
)

var verifier = NewChainVerifier(sessionVerifier, tokenVerifier)

func GetSessionVerifier() *SessionVerifier {
	return sessionVerifier
}

func GetTokenVerifier() *TokenVerifier {
	return tokenVerifier
}

// GetVerifier accepts a session cookie or a bearer token.
func GetVerifier() *ChainVerifier {
	return verifier
}
