package core

import (
	"net/http"
	"time"

	"github.com/caasmo/tablebook/db"
)

// This file defines the standardized response format for endpoints that
// issue a session credential (login, OAuth2 callback exchange).
//
// Example:
// {
//   "status": 200,
//   "code": "ok_authentication",
//   "message": "Authentication successful",
//   "data": {
//     "token_type": "Bearer",
//     "access_token": "eyJhbGciOiJIUzI...",
//     "expires_in": 604800,
//     "record": { "id": 7, "email": "user@example.com", ... }
//   }
// }

const (
	// oks for non precomputed, dynamic responses
	CodeOkAuthentication = "ok_authentication"
	CodeOkMe             = "ok_me"
	CodeOkList           = "ok_list"
	CodeOkDetail         = "ok_detail"
)

// AuthData represents the authentication response structure. Record is the
// user snapshot embedded in the credential; the password hash never
// serializes.
type AuthData struct {
	TokenType   string  `json:"token_type"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
	Record      db.User `json:"record"`
}

// NewAuthData creates a new AuthData instance.
func NewAuthData(token string, expiry time.Time, user db.User) *AuthData {
	return &AuthData{
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresIn:   int(time.Until(expiry).Seconds()),
		Record:      user,
	}
}

// writeAuthResponse writes a standardized authentication response.
func writeAuthResponse(w http.ResponseWriter, token string, expiry time.Time, user db.User) {
	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: NewAuthData(token, expiry, user),
	}
	writeJsonWithData(w, response)
}
