package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/mail"
	"github.com/caasmo/tablebook/queue"
)

// ForgotPasswordHandler issues a password reset action token and emails the
// reset link.
// Endpoint: POST /auth/forgotPassword
// Authenticated: No
// Allowed Mimetype: application/json
//
// The token is issued without checking that a user exists for the email;
// redemption does that check. The response reflects the send outcome.
// Repeat requests for the same address inside the resend cooldown are
// answered without issuing or sending again.
func (a *App) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if req.Email == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	cooldown := a.Config().Smtp.ResendCooldown.Duration
	cooldownKey := fmt.Sprintf("forgot:%s:%d", req.Email, queue.CoolDownBucket(cooldown, time.Now()))
	if a.mailCooldowns != nil {
		if _, hit := a.mailCooldowns.Get(cooldownKey); hit {
			WriteJsonOk(w, okPasswordResetRequested)
			return
		}
	}

	token, err := crypto.NewActionToken()
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	if err := a.DbTokens().DeleteActionTokens(req.Email, db.PurposeForgot); err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if err := a.DbTokens().InsertActionToken(db.ActionToken{
		Email:   req.Email,
		Token:   token,
		Purpose: db.PurposeForgot,
	}); err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}

	body := mail.PasswordResetBody(a.Config().Client.BaseURL, req.Email, token)
	if err := a.Notifier().Send(r.Context(), req.Email, "Reset your password", body); err != nil {
		a.Logger().Error("failed to send reset email", "email", req.Email, "err", err)
		WriteJsonError(w, errorMailDelivery)
		return
	}
	if a.mailCooldowns != nil {
		a.mailCooldowns.SetWithTTL(cooldownKey, req.Email, 1, cooldown)
	}

	WriteJsonOk(w, okPasswordResetRequested)
}

// ResetPasswordHandler redeems a forgot action token and replaces the
// user's password hash.
// Endpoint: POST /auth/resetPassword
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if req.Email == "" || req.Token == "" || req.Password == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if len(req.Password) < 8 {
		WriteJsonError(w, errorPasswordComplexity)
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

	token, err := a.DbTokens().GetActionToken(req.Email, req.Token, db.PurposeForgot)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if token == nil {
		WriteJsonError(w, errorInvalidActionToken)
		return
	}
	if a.actionTokenExpired(token, a.Config().ActionTokens.ForgotTTL.Duration) {
		// An expired row can never be redeemed; remove it.
		if err := a.DbTokens().DeleteActionToken(req.Email, req.Token); err != nil {
			a.Logger().Error("failed to delete action token", "email", req.Email, "err", err)
		}
		WriteJsonError(w, errorInvalidActionToken)
		return
	}

	hashed, err := crypto.GenerateHash(req.Password)
	if err != nil {
		a.Logger().Error("failed to hash password", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}

	if err := a.DbAuth().UpdatePassword(user.ID, string(hashed)); err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if err := a.DbTokens().DeleteActionToken(req.Email, req.Token); err != nil {
		a.Logger().Error("failed to delete action token", "email", req.Email, "err", err)
	}

	a.Logger().Info("password reset", "user_id", user.ID, "email", user.Email)
	WriteJsonOk(w, okPasswordReset)
}
