package core

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/caasmo/tablebook/db"
)

func ratingCacheKey(id int64) string {
	return "rating:" + strconv.FormatInt(id, 10)
}

// restaurantRating returns a restaurant's rating aggregates, serving from
// the short-lived cache when one is configured.
func (a *App) restaurantRating(id int64) (*db.Rating, error) {
	key := ratingCacheKey(id)
	if a.ratings != nil {
		if rating, ok := a.ratings.Get(key); ok {
			return &rating, nil
		}
	}
	rating, err := a.DbStore().GetRestaurantRating(id)
	if err != nil || rating == nil {
		return rating, err
	}
	if a.ratings != nil {
		a.ratings.SetWithTTL(key, *rating, 1, a.cfg.Cache.RatingTTL.Duration)
	}
	return rating, nil
}

// invalidateRating drops a restaurant's cached aggregates after a comment
// mutation.
func (a *App) invalidateRating(id int64) {
	if a.ratings != nil {
		a.ratings.Del(ratingCacheKey(id))
	}
}

// restaurantDetail is the detail response shape: the row, its rating
// aggregates and its comments.
type restaurantDetail struct {
	db.Restaurant
	db.Rating
	Comments []db.CommentDetail `json:"comments"`
}

// ListRestaurantsHandler returns the public restaurant listing with rating
// aggregates.
// Endpoint: GET /restaurant
// Authenticated: No
func (a *App) ListRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	filter := db.RestaurantFilter{
		ListFilter:  a.listFilter(r),
		ProvinceID:  queryID(r, "provinceId"),
		WorkingTime: r.URL.Query().Get("workingTime"),
	}

	listings, total, err := a.DbStore().ListRestaurants(filter)
	if err != nil {
		a.Logger().Error("failed to list restaurants", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	writeJsonList(w, CodeOkList, listings, total)
}

// ManagedRestaurantsHandler returns the restaurants visible in the
// management views: all of them for admins, their own for managers.
// Endpoint: GET /userCheck/restaurant
// Authenticated: Yes (admin, manager)
func (a *App) ManagedRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	claims := AuthClaims(r)
	filter := db.RestaurantFilter{
		ListFilter: a.listFilter(r),
		ProvinceID: queryID(r, "provinceId"),
	}

	var listings []db.RestaurantListing
	var total int
	var err error
	if claims.Role == db.RoleManager {
		listings, total, err = a.DbStore().ListRestaurantsByManager(filter, claims.UserID)
	} else {
		listings, total, err = a.DbStore().ListRestaurants(filter)
	}
	if err != nil {
		a.Logger().Error("failed to list managed restaurants", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	writeJsonList(w, CodeOkList, listings, total)
}

// GetRestaurantHandler returns one restaurant with rating aggregates and
// its comments.
// Endpoint: GET /restaurant/:id
// Authenticated: No
func (a *App) GetRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	restaurant, err := a.DbStore().GetRestaurant(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if restaurant == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	rating, err := a.restaurantRating(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	comments, err := a.DbStore().ListCommentsByRestaurant(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkDetail, Message: "OK"},
		Data: restaurantDetail{
			Restaurant: *restaurant,
			Rating:     *rating,
			Comments:   comments,
		},
	})
}

// CreateRestaurantHandler inserts a restaurant.
// Endpoint: POST /restaurant
// Authenticated: Yes (admin, manager)
// Allowed Mimetype: application/json
func (a *App) CreateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var restaurant db.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if restaurant.Name == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	// Managers own what they create.
	claims := AuthClaims(r)
	if claims.Role == db.RoleManager {
		restaurant.UserID = claims.UserID
	}

	if err := a.DbStore().CreateRestaurant(restaurant); err != nil {
		a.Logger().Error("failed to create restaurant", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okCreated)
}

// UpdateRestaurantHandler rewrites a restaurant.
// Endpoint: PUT /restaurant/:id
// Authenticated: Yes (admin, manager)
// Allowed Mimetype: application/json
func (a *App) UpdateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetRestaurant(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	claims := AuthClaims(r)
	if claims.Role == db.RoleManager && existing.UserID != claims.UserID {
		WriteJsonError(w, errorRoleNotAllowed)
		return
	}

	restaurant := *existing
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	restaurant.ID = id

	if err := a.DbStore().UpdateRestaurant(restaurant); err != nil {
		a.Logger().Error("failed to update restaurant", "restaurant_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okUpdated)
}

// DeleteRestaurantHandler removes a restaurant.
// Endpoint: DELETE /restaurant/:id
// Authenticated: Yes (admin, manager)
func (a *App) DeleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetRestaurant(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	claims := AuthClaims(r)
	if claims.Role == db.RoleManager && existing.UserID != claims.UserID {
		WriteJsonError(w, errorRoleNotAllowed)
		return
	}

	if err := a.DbStore().DeleteRestaurant(id); err != nil {
		a.Logger().Error("failed to delete restaurant", "restaurant_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okDeleted)
}
