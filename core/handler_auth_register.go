package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/mail"
)

// RegisterHandler handles password-based user registration.
// Endpoint: POST /auth/register
// Authenticated: No
// Allowed Mimetype: application/json
//
// The response reflects the verification email send outcome: the user row
// and token are created first, but a delivery failure fails the request.
func (a *App) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phoneNumber"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if req.Email == "" || req.Password == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if len(req.Password) < 8 {
		WriteJsonError(w, errorPasswordComplexity)
		return
	}

	existing, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing != nil {
		WriteJsonError(w, errorEmailConflict)
		return
	}

	hashed, err := crypto.GenerateHash(req.Password)
	if err != nil {
		a.Logger().Error("failed to hash password", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}

	newUser := db.User{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      db.RoleUser,
		Verified:  false,
	}

	user, err := a.DbAuth().CreateUser(newUser)
	if err != nil {
		// A concurrent register can win the unique constraint race after
		// the lookup above.
		if errors.Is(err, db.ErrConstraintUnique) {
			WriteJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("failed to create user", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}

	token, err := crypto.NewActionToken()
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	// A fresh token supersedes any outstanding one for this email.
	if err := a.DbTokens().DeleteActionTokens(user.Email, db.PurposeRegister); err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if err := a.DbTokens().InsertActionToken(db.ActionToken{
		Email:   user.Email,
		Token:   token,
		Purpose: db.PurposeRegister,
	}); err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}

	body := mail.VerificationBody(a.Config().Client.BaseURL, user.Email, token)
	if err := a.Notifier().Send(r.Context(), user.Email, "Confirm your account", body); err != nil {
		a.Logger().Error("failed to send verification email", "email", user.Email, "err", err)
		WriteJsonError(w, errorMailDelivery)
		return
	}

	a.Logger().Info("user registered", "user_id", user.ID, "email", user.Email)
	WriteJsonOk(w, okRegistered)
}
