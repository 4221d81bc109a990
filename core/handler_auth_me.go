package core

import (
	"net/http"
)

// MeHandler echoes the identity decoded from the session credential.
// Endpoint: GET /auth/getMe
// Authenticated: Yes (any role)
//
// The record is the snapshot embedded at issuance time, not a fresh store
// read: a credential stays valid for its lifetime even if the row changes.
func (a *App) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := AuthClaims(r)

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkMe,
			Message: "OK",
		},
		Data: claims.User(),
	})
}
