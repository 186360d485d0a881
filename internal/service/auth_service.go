package service

import (
	"crypto/subtle"

	"tanuki-quiz/internal/config"
	"tanuki-quiz/internal/logger"
)

// AuthService guards admin operations with a single shared secret.
type AuthService interface {
	Authorize(token string) bool
}

type sharedSecretAuth struct {
	expected []byte
}

// NewAuthService creates an AuthService from the configured admin token.
// With no token configured every admin request is denied.
func NewAuthService(cfg *config.Config) AuthService {
	if cfg.Auth.AdminToken == "" {
		logger.Get().Warn("No admin token configured; admin endpoints will reject every request")
	}
	return &sharedSecretAuth{expected: []byte(cfg.Auth.AdminToken)}
}

// Authorize compares in constant time so response timing does not leak the token.
func (a *sharedSecretAuth) Authorize(token string) bool {
	if len(a.expected) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), a.expected) == 1
}
