package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/mock"
	"github.com/caasmo/tablebook/queue"
)

// withClaims attaches session claims the way the access guard would.
func withClaims(req *http.Request, user db.User) *http.Request {
	claims := &crypto.SessionClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Verified: user.Verified,
	}
	return req.WithContext(context.WithValue(req.Context(), claimsKey, claims))
}

func TestCreateBookingHandler(t *testing.T) {
	var createdBooking db.Booking
	var enqueued *db.Job

	mdb := &mock.Db{
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			if id == 9 {
				return &db.Restaurant{ID: 9, Name: "Chez Test"}, nil
			}
			return nil, nil
		},
		CreateBookingFunc: func(b db.Booking) (int64, error) {
			createdBooking = b
			return 77, nil
		},
		InsertJobFunc: func(job db.Job) error {
			enqueued = &job
			return nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("POST", "/booking", strings.NewReader(
		`{"restaurantId":9,"date":"2026-09-01T19:30:00Z","people":4,"note":"window table"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, db.User{ID: 21, Email: "guest@example.com", Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.CreateBookingHandler(rr, req)
	checkResponse(t, rr, okCreated)

	if createdBooking.UserID != 21 {
		t.Errorf("booking must belong to the caller, got user %d", createdBooking.UserID)
	}
	if createdBooking.People != 4 {
		t.Errorf("expected 4 people, got %d", createdBooking.People)
	}

	if enqueued == nil {
		t.Fatal("expected a booking notice job to be enqueued")
	}
	if enqueued.JobType != queue.JobTypeBookingNotice {
		t.Errorf("expected job type %q, got %q", queue.JobTypeBookingNotice, enqueued.JobType)
	}
	var payload queue.PayloadBookingNotice
	if err := json.Unmarshal(enqueued.Payload, &payload); err != nil {
		t.Fatalf("failed to decode job payload: %v", err)
	}
	if payload.BookingID != 77 || payload.RestaurantID != 9 || payload.UserID != 21 {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestCreateBookingHandler_UnknownRestaurant(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("POST", "/booking", strings.NewReader(`{"restaurantId":404}`))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, db.User{ID: 21, Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.CreateBookingHandler(rr, req)
	checkResponse(t, rr, errorNotFound)
}

// The booking commits even when the notice cannot be enqueued; delivery is
// best effort.
func TestCreateBookingHandler_EnqueueFailureStillCreates(t *testing.T) {
	mdb := &mock.Db{
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			return &db.Restaurant{ID: id}, nil
		},
		InsertJobFunc: func(job db.Job) error {
			return db.ErrConstraintUnique
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("POST", "/booking", strings.NewReader(`{"restaurantId":9,"people":2}`))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, db.User{ID: 21, Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.CreateBookingHandler(rr, req)
	checkResponse(t, rr, okCreated)
}

func TestListBookingsHandler_Scoping(t *testing.T) {
	var gotFilter db.BookingFilter
	mdb := &mock.Db{
		ListBookingsFunc: func(f db.BookingFilter) ([]db.BookingDetail, int, error) {
			gotFilter = f
			return nil, 0, nil
		},
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			// Restaurant 9 belongs to manager 21.
			return &db.Restaurant{ID: id, UserID: 21}, nil
		},
	}
	app := newTestApp(t, mdb)

	// Without restaurantId the listing is scoped to the caller.
	req := httptest.NewRequest("GET", "/booking", nil)
	req = withClaims(req, db.User{ID: 21, Role: db.RoleUser})
	app.ListBookingsHandler(httptest.NewRecorder(), req)

	if gotFilter.UserID != 21 || gotFilter.RestaurantID != 0 {
		t.Errorf("expected caller scoping, got %+v", gotFilter)
	}

	// The owning manager gets the restaurant's full booking list.
	req = httptest.NewRequest("GET", "/booking?restaurantId=9", nil)
	req = withClaims(req, db.User{ID: 21, Role: db.RoleManager})
	app.ListBookingsHandler(httptest.NewRecorder(), req)

	if gotFilter.RestaurantID != 9 || gotFilter.UserID != 0 {
		t.Errorf("expected restaurant scoping, got %+v", gotFilter)
	}

	// A plain user asking for a restaurant stays scoped to their own
	// bookings.
	gotFilter = db.BookingFilter{}
	req = httptest.NewRequest("GET", "/booking?restaurantId=9", nil)
	req = withClaims(req, db.User{ID: 42, Role: db.RoleUser})
	app.ListBookingsHandler(httptest.NewRecorder(), req)

	if gotFilter.RestaurantID != 9 || gotFilter.UserID != 42 {
		t.Errorf("expected user-narrowed scoping, got %+v", gotFilter)
	}
}

func TestListBookingsHandler_ForeignRestaurant(t *testing.T) {
	called := false
	mdb := &mock.Db{
		ListBookingsFunc: func(f db.BookingFilter) ([]db.BookingDetail, int, error) {
			called = true
			return nil, 0, nil
		},
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			return &db.Restaurant{ID: id, UserID: 77}, nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("GET", "/booking?restaurantId=9", nil)
	req = withClaims(req, db.User{ID: 21, Role: db.RoleManager})
	rr := httptest.NewRecorder()

	app.ListBookingsHandler(rr, req)
	checkResponse(t, rr, errorRoleNotAllowed)
	if called {
		t.Error("expected no listing for a restaurant the manager does not own")
	}
}

func TestUpdateBookingHandler_OwnershipGuard(t *testing.T) {
	mdb := &mock.Db{
		GetBookingFunc: func(id int64) (*db.Booking, error) {
			return &db.Booking{ID: id, UserID: 21, RestaurantID: 9, People: 2}, nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("PUT", "/booking/5", strings.NewReader(`{"people":6}`))
	req.Header.Set("Content-Type", "application/json")
	req = withPathParam(req, "id", "5")
	req = withClaims(req, db.User{ID: 99, Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.UpdateBookingHandler(rr, req)
	checkResponse(t, rr, errorRoleNotAllowed)
}

func TestCheckBookingHandler(t *testing.T) {
	mdb := &mock.Db{
		HasBookingFunc: func(userID, restaurantID int64) (bool, error) {
			return userID == 21 && restaurantID == 9, nil
		},
	}
	app := newTestApp(t, mdb)

	testCases := []struct {
		name   string
		target string
		want   bool
	}{
		{name: "has booked", target: "/userCheck/checkBooking?userId=21&restaurantId=9", want: true},
		{name: "never booked", target: "/userCheck/checkBooking?userId=22&restaurantId=9", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			rr := httptest.NewRecorder()

			app.CheckBookingHandler(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rr.Code)
			}
			var resp struct {
				Data struct {
					IsBooking bool `json:"isBooking"`
				} `json:"data"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Data.IsBooking != tc.want {
				t.Errorf("expected isBooking=%v, got %v", tc.want, resp.Data.IsBooking)
			}
		})
	}
}
