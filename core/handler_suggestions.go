package core

import (
	"encoding/json"
	"net/http"

	"github.com/caasmo/tablebook/db"
)

// ListSuggestionsHandler returns the suggestions addressed to the caller's
// restaurants.
// Endpoint: GET /contributeIdeas
// Authenticated: Yes (manager)
func (a *App) ListSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	claims := AuthClaims(r)
	suggestions, total, err := a.DbStore().ListSuggestionsByManager(a.listFilter(r), claims.UserID)
	if err != nil {
		a.Logger().Error("failed to list suggestions", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	writeJsonList(w, CodeOkList, suggestions, total)
}

// GetSuggestionHandler returns one suggestion.
// Endpoint: GET /contributeIdeas/:id
// Authenticated: Yes
func (a *App) GetSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	suggestion, err := a.DbStore().GetSuggestion(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if suggestion == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkDetail, Message: "OK"},
		Data:      suggestion,
	})
}

// CreateSuggestionHandler inserts a suggestion. Open to anonymous visitors;
// logged-in callers get attributed.
// Endpoint: POST /contributeIdeas
// Allowed Mimetype: application/json
func (a *App) CreateSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var suggestion db.Suggestion
	if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if suggestion.RestaurantID == 0 || suggestion.Comment == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if claims := AuthClaims(r); claims != nil {
		suggestion.UserID = claims.UserID
	}

	if err := a.DbStore().CreateSuggestion(suggestion); err != nil {
		a.Logger().Error("failed to create suggestion", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okCreated)
}

// UpdateSuggestionHandler rewrites a suggestion's comment.
// Endpoint: PUT /contributeIdeas/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) UpdateSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetSuggestion(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	suggestion := *existing
	if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	suggestion.ID = id

	if err := a.DbStore().UpdateSuggestion(suggestion); err != nil {
		a.Logger().Error("failed to update suggestion", "suggestion_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okUpdated)
}

// DeleteSuggestionHandler removes a suggestion.
// Endpoint: DELETE /contributeIdeas/:id
// Authenticated: Yes (manager)
func (a *App) DeleteSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetSuggestion(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	if err := a.DbStore().DeleteSuggestion(id); err != nil {
		a.Logger().Error("failed to delete suggestion", "suggestion_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okDeleted)
}
