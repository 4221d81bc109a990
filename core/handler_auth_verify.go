package core

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/caasmo/tablebook/db"
)

// VerifyUserHandler redeems a register action token and marks the account
// verified.
// Endpoint: POST /auth/verifiedUser
// Authenticated: No
// Allowed Mimetype: application/json
//
// Redemption is destructive: a successful redemption removes every register
// token for the email, so a second attempt with the same token fails.
func (a *App) VerifyUserHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if req.Email == "" || req.Token == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	token, err := a.DbTokens().GetActionToken(req.Email, req.Token, db.PurposeRegister)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if token == nil {
		WriteJsonError(w, errorInvalidActionToken)
		return
	}
	if a.actionTokenExpired(token, a.Config().ActionTokens.RegisterTTL.Duration) {
		// An expired row can never be redeemed; remove it.
		if err := a.DbTokens().DeleteActionToken(req.Email, req.Token); err != nil {
			a.Logger().Error("failed to delete action token", "email", req.Email, "err", err)
		}
		WriteJsonError(w, errorInvalidActionToken)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if user == nil {
		WriteJsonError(w, errorInvalidActionToken)
		return
	}

	if user.Verified {
		// Token is spent either way.
		if err := a.DbTokens().DeleteActionToken(req.Email, req.Token); err != nil {
			a.Logger().Error("failed to delete action token", "email", req.Email, "err", err)
		}
		WriteJsonError(w, errorAlreadyVerified)
		return
	}

	if err := a.DbAuth().MarkVerified(user.ID); err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if err := a.DbTokens().DeleteActionTokens(req.Email, db.PurposeRegister); err != nil {
		a.Logger().Error("failed to delete action tokens", "email", req.Email, "err", err)
	}

	a.Logger().Info("email verified", "user_id", user.ID, "email", user.Email)
	WriteJsonOk(w, okEmailVerified)
}

// actionTokenExpired reports whether the token's creation time is further
// in the past than the purpose's TTL. Expired tokens fail redemption like
// missing ones.
func (a *App) actionTokenExpired(t *db.ActionToken, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return time.Since(t.Created) > ttl
}
