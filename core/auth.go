package core

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/crypto"
)

// Authenticator validates an inbound session credential and returns the
// decoded identity. Verification is purely cryptographic: the claims carry
// the user snapshot from issuance time and no store lookup happens here.
type Authenticator interface {
	Authenticate(r *http.Request) (*crypto.SessionClaims, jsonResponse, error)
}

// DefaultAuthenticator implements Authenticator using the bearer header and
// the process-wide signing secret.
type DefaultAuthenticator struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewDefaultAuthenticator(cfg *config.Config, logger *slog.Logger) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		cfg:    cfg,
		logger: logger,
	}
}

// Authenticate implements the Authenticator interface.
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*crypto.SessionClaims, jsonResponse, error) {
	errAuth := errors.New("auth error")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errorNoAuthHeader, errAuth
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errorInvalidTokenFormat, errAuth
	}

	claims, err := crypto.ParseSessionToken(tokenString, a.cfg.Jwt.Secret())
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return nil, errorJwtTokenExpired, errAuth
		}
		return nil, errorJwtInvalidToken, errAuth
	}

	return claims, jsonResponse{}, nil
}
