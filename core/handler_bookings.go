package core

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/queue"
)

type bookingRequest struct {
	RestaurantID int64  `json:"restaurantId"`
	Date         string `json:"date"`
	People       int    `json:"people"`
	Note         string `json:"note"`
}

// ListBookingsHandler returns bookings scoped to the caller: a restaurant's
// bookings when restaurantId is given, otherwise the caller's own.
// Endpoint: GET /booking
// Authenticated: Yes (user, manager)
func (a *App) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := AuthClaims(r)
	filter := db.BookingFilter{ListFilter: a.listFilter(r)}
	restaurantID := queryID(r, "restaurantId")
	switch {
	case restaurantID == 0:
		filter.UserID = claims.UserID
	case claims.Role == db.RoleManager:
		// Managers may list a restaurant's bookings only for restaurants
		// they own.
		restaurant, err := a.DbStore().GetRestaurant(restaurantID)
		if err != nil {
			a.Logger().Error("failed to load restaurant", "err", err)
			WriteJsonError(w, errorStoreFailure)
			return
		}
		if restaurant == nil || restaurant.UserID != claims.UserID {
			WriteJsonError(w, errorRoleNotAllowed)
			return
		}
		filter.RestaurantID = restaurantID
	default:
		// Plain users can narrow to a restaurant but only scoped to their
		// own bookings.
		filter.RestaurantID = restaurantID
		filter.UserID = claims.UserID
	}

	bookings, total, err := a.DbStore().ListBookings(filter)
	if err != nil {
		a.Logger().Error("failed to list bookings", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	writeJsonList(w, CodeOkList, bookings, total)
}

// GetBookingHandler returns one booking.
// Endpoint: GET /booking/:id
// Authenticated: Yes
func (a *App) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	booking, err := a.DbStore().GetBooking(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if booking == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkDetail, Message: "OK"},
		Data:      booking,
	})
}

// CreateBookingHandler inserts a booking for the caller and enqueues the
// confirmation emails.
// Endpoint: POST /booking
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if req.RestaurantID == 0 {
		WriteJsonError(w, errorMissingFields)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			WriteJsonError(w, errorInvalidRequest)
			return
		}
		date = parsed.UTC()
	}
	if req.People <= 0 {
		req.People = 1
	}

	restaurant, err := a.DbStore().GetRestaurant(req.RestaurantID)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if restaurant == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	claims := AuthClaims(r)
	booking := db.Booking{
		RestaurantID: req.RestaurantID,
		UserID:       claims.UserID,
		Date:         date,
		People:       req.People,
		Note:         req.Note,
	}

	bookingID, err := a.DbStore().CreateBooking(booking)
	if err != nil {
		a.Logger().Error("failed to create booking", "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}

	// Confirmation emails go through the job queue. The booking is already
	// committed, so an enqueue failure is logged but not surfaced.
	payload, err := json.Marshal(queue.PayloadBookingNotice{
		BookingID:    bookingID,
		RestaurantID: req.RestaurantID,
		UserID:       claims.UserID,
	})
	if err == nil {
		err = a.DbQueue().InsertJob(db.Job{
			JobType: queue.JobTypeBookingNotice,
			Payload: payload,
		})
	}
	if err != nil {
		a.Logger().Error("failed to enqueue booking notice", "booking_id", bookingID, "err", err)
	}

	WriteJsonOk(w, okCreated)
}

// UpdateBookingHandler rewrites a booking. Plain users may only touch their
// own bookings.
// Endpoint: PUT /booking/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) UpdateBookingHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetBooking(id)
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

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	booking := *existing
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			WriteJsonError(w, errorInvalidRequest)
			return
		}
		booking.Date = parsed.UTC()
	}
	if req.People > 0 {
		booking.People = req.People
	}
	if req.Note != "" {
		booking.Note = req.Note
	}

	if err := a.DbStore().UpdateBooking(booking); err != nil {
		a.Logger().Error("failed to update booking", "booking_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okUpdated)
}

// DeleteBookingHandler removes a booking.
// Endpoint: DELETE /booking/:id
// Authenticated: Yes (admin, manager)
func (a *App) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.pathID(r, "id")
	if err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetBooking(id)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}
	if existing == nil {
		WriteJsonError(w, errorNotFound)
		return
	}

	if err := a.DbStore().DeleteBooking(id); err != nil {
		a.Logger().Error("failed to delete booking", "booking_id", id, "err", err)
		WriteJsonError(w, errorStoreFailure)
		return
	}
	WriteJsonOk(w, okDeleted)
}

// CheckBookingHandler reports whether a user has ever booked a restaurant.
// The frontend uses it to gate the review form.
// Endpoint: GET /userCheck/checkBooking?userId=&restaurantId=
// Authenticated: No
func (a *App) CheckBookingHandler(w http.ResponseWriter, r *http.Request) {
	userID := queryID(r, "userId")
	restaurantID := queryID(r, "restaurantId")
	if userID == 0 || restaurantID == 0 {
		WriteJsonError(w, errorMissingFields)
		return
	}

	has, err := a.DbStore().HasBooking(userID, restaurantID)
	if err != nil {
		WriteJsonError(w, errorStoreFailure)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkDetail, Message: "OK"},
		Data:      map[string]bool{"isBooking": has},
	})
}
