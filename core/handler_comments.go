package core

import (
	"encoding/json"
	"net/http"

	"github.com/caasmo/tablebook/db"
)

// ListCommentsHandler returns comments across all restaurants.
// Endpoint: GET /comment
// Authenticated: No
func (a *App) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	comments, total, err := a.DbStore().ListComments(a.listFilter(r))
	if err != nil {
		a.Logger().Error("failed to list comments", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	writeJsonList(w, CodeOkList, comments, total)
}

// GetCommentHandler returns one comment.
// Endpoint: GET /comment/:id
// Authenticated: No
func (a *App) GetCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	comment, err := a.DbStore().GetComment(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if comment == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkDetail, Message: "OK"},
		Data:      comment,
	})
}

// CreateCommentHandler inserts a review authored by the caller.
// Endpoint: POST /comment
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var comment db.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if comment.RestaurantID == 0 || comment.Content == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if comment.Rate < 1 || comment.Rate > 5 {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	comment.UserID = AuthClaims(r).UserID

	if err := a.DbStore().CreateComment(comment); err != nil {
		a.Logger().Error("failed to create comment", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	a.invalidateRating(comment.RestaurantID)
	WriteJsonOk(w, okCreated)
}

// UpdateCommentHandler rewrites a comment. Plain users may only touch their
// own.
// Endpoint: PUT /comment/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetComment(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	claims := AuthClaims(r)
	if claims.Role == db.RoleUser && existing.UserID != claims.UserID {
		WriteJsonError(w, errorRoleNotAllowed)
		return
	}

	comment := *existing
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if comment.Rate < 1 || comment.Rate > 5 {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	comment.ID = id
	comment.UserID = existing.UserID

	if err := a.DbStore().UpdateComment(comment); err != nil {
		a.Logger().Error("failed to update comment", "comment_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	a.invalidateRating(comment.RestaurantID)
	WriteJsonOk(w, okUpdated)
}

// DeleteCommentHandler removes a comment. Plain users may only delete their
// own.
// Endpoint: DELETE /comment/:id
// Authenticated: Yes
func (a *App) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetComment(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	claims := AuthClaims(r)
	if claims.Role == db.RoleUser && existing.UserID != claims.UserID {
		WriteJsonError(w, errorRoleNotAllowed)
		return
	}

	if err := a.DbStore().DeleteComment(id); err != nil {
		a.Logger().Error("failed to delete comment", "comment_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	a.invalidateRating(existing.RestaurantID)
	WriteJsonOk(w, okDeleted)
}
