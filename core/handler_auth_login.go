package core

import (
	"encoding/json"
	"net/http"

	"github.com/caasmo/tablebook/crypto"
)

// LoginHandler handles password-based authentication.
// Endpoint: POST /auth/login
// Authenticated: No
// Allowed Mimetype: application/json
//
// Unknown email and wrong password produce the same generic authentication
// failure: the response never reveals whether the email exists.
func (a *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if user == nil {
		WriteJsonError(w, errorInvalidCredentials)
		return
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		WriteJsonError(w, errorInvalidCredentials)
		return
	}

	cfg := a.Config()
	token, expiry, err := crypto.NewSessionToken(*user, cfg.Jwt.Secret(), cfg.Jwt.SessionDuration.Duration)
	if err != nil {
		a.Logger().Error("failed to issue session token", "user_id", user.ID, "err", err)
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	writeAuthResponse(w, token, expiry, *user)
}
