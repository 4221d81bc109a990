package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
)

type userRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
	Role      string `json:"role"`
	Verified  bool   `json:"verified"`
}

// ListUsersHandler returns the user roster for the admin views.
// Endpoint: GET /user
// Authenticated: Yes (admin)
func (a *App) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	filter := db.UserFilter{
		ListFilter: a.listFilter(r),
		SortDesc:   r.URL.Query().Get("sort") == "desc",
	}

	users, total, err := a.DbStore().ListUsers(filter)
	if err != nil {
		a.Logger().Error("failed to list users", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	writeJsonList(w, CodeOkList, users, total)
}

// GetUserHandler returns one user.
// Endpoint: GET /user/:id
// Authenticated: Yes (admin)
func (a *App) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByID(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if user == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkDetail, Message: "OK"},
		Data:      user,
	})
}

// CreateUserHandler inserts a user with an arbitrary role. Admin-created
// accounts skip email verification.
// Endpoint: POST /user
// Authenticated: Yes (admin)
// Allowed Mimetype: application/json
func (a *App) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
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
	role := req.Role
	switch role {
	case "":
		role = db.RoleUser
	case db.RoleUser, db.RoleManager, db.RoleAdmin:
	default:
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	hash, err := crypto.GenerateHash(req.Password)
	if err != nil {
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	_, err = a.DbAuth().CreateUser(db.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
		Verified:  true,
	})
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			WriteJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("failed to create user", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okCreated)
}

// UpdateUserHandler rewrites a user's profile. Non-admin callers may only
// update themselves; a self-update returns a fresh session token so the
// client's claims stay in sync with the row.
// Endpoint: PUT /user/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	claims := AuthClaims(r)
	if claims.Role != db.RoleAdmin && claims.UserID != id {
		WriteJsonError(w, errorRoleNotAllowed)
		return
	}

	existing, err := a.DbAuth().GetUserByID(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	user := *existing
	if req.Email != "" {
		user.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if err := ValidateEmail(user.Email); err != nil {
			WriteJsonError(w, errorInvalidRequest)
			return
		}
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	// Only admins may move a user between roles.
	if req.Role != "" && claims.Role == db.RoleAdmin {
		switch req.Role {
		case db.RoleUser, db.RoleManager, db.RoleAdmin:
			user.Role = req.Role
		default:
			WriteJsonError(w, errorInvalidRequest)
			return
		}
	}

	user.Password = ""
	if req.Password != "" {
		if len(req.Password) < 8 {
			WriteJsonError(w, errorPasswordComplexity)
			return
		}
		hash, err := crypto.GenerateHash(req.Password)
		if err != nil {
			WriteJsonError(w, errorTokenGeneration)
			return
		}
		user.Password = string(hash)
	}

	if err := a.DbStore().UpdateUser(user); err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			WriteJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("failed to update user", "user_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}

	// The session token embeds the profile, so a self-update invalidates
	// the claims the client is holding.
	if claims.UserID == id {
		fresh, err := a.DbAuth().GetUserByID(id)
		if err != nil || fresh == nil {
			WriteJsonError(w, errorStoreFailure)
			return
		}
		token, _, err := crypto.NewSessionToken(*fresh, a.Config().Jwt.Secret(), a.Config().Jwt.SessionDuration.Duration)
		if err != nil {
			WriteJsonError(w, errorTokenGeneration)
			return
		}
		writeJsonWithData(w, JsonWithData{
			JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkUpdated, Message: "User updated successfully"},
			Data:      map[string]string{"newToken": token},
		})
		return
	}

	WriteJsonOk(w, okUpdated)
}

// DeleteUserHandler removes a user.
// Endpoint: DELETE /user/:id
// Authenticated: Yes (admin)
func (a *App) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbAuth().GetUserByID(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	if err := a.DbStore().DeleteUser(id); err != nil {
		a.Logger().Error("failed to delete user", "user_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okDeleted)
}
