package core

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/mock"
)

// The detail response composes the row, its rating aggregates and its
// comments with author names.
func TestGetRestaurantHandler_Composition(t *testing.T) {
	mdb := &mock.Db{
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			return &db.Restaurant{ID: id, Name: "Chez Test"}, nil
		},
		GetRestaurantRatingFunc: func(id int64) (*db.Rating, error) {
			return &db.Rating{Average: 4.5, Count: 12}, nil
		},
		ListCommentsByRestaurantFunc: func(restaurantID int64) ([]db.CommentDetail, error) {
			return []db.CommentDetail{
				{Comment: db.Comment{ID: 1, Content: "great"}, FirstName: "A", LastName: "B"},
			}, nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("GET", "/restaurant/9", nil)
	req = withPathParam(req, "id", "9")
	rr := httptest.NewRecorder()

	app.GetRestaurantHandler(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Data struct {
			Name      string  `json:"name"`
			RateTotal float64 `json:"rateTotal"`
			RateCount int     `json:"rateCount"`
			Comments  []struct {
				Content   string `json:"content"`
				FirstName string `json:"firstName"`
			} `json:"comments"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Name != "Chez Test" {
		t.Errorf("expected restaurant name, got %q", resp.Data.Name)
	}
	if resp.Data.RateTotal != 4.5 || resp.Data.RateCount != 12 {
		t.Errorf("expected rating aggregates, got %+v", resp.Data)
	}
	if len(resp.Data.Comments) != 1 || resp.Data.Comments[0].FirstName != "A" {
		t.Errorf("expected comments with author names, got %+v", resp.Data.Comments)
	}
}

// The rating aggregates are served from the cache between recomputes, and a
// comment mutation drops the cached entry.
func TestGetRestaurantHandler_RatingCache(t *testing.T) {
	ratingReads := 0
	mdb := &mock.Db{
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			return &db.Restaurant{ID: id, Name: "Chez Test"}, nil
		},
		GetRestaurantRatingFunc: func(id int64) (*db.Rating, error) {
			ratingReads++
			return &db.Rating{Average: 4.5, Count: 12}, nil
		},
	}
	app := newTestApp(t, mdb)
	app.SetRatings(newMapCache[db.Rating]())

	get := func() {
		req := httptest.NewRequest("GET", "/restaurant/9", nil)
		req = withPathParam(req, "id", "9")
		rr := httptest.NewRecorder()
		app.GetRestaurantHandler(rr, req)
		if rr.Code != 200 {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	}

	get()
	get()
	if ratingReads != 1 {
		t.Fatalf("expected one aggregate read for repeated requests, got %d", ratingReads)
	}

	// A new review invalidates the cached aggregates.
	req := httptest.NewRequest("POST", "/comment", strings.NewReader(
		`{"restaurantId":9,"content":"great","rate":5}`))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, db.User{ID: 21, Role: db.RoleUser})
	rr := httptest.NewRecorder()
	app.CreateCommentHandler(rr, req)
	checkResponse(t, rr, okCreated)

	get()
	if ratingReads != 2 {
		t.Fatalf("expected a recompute after a new comment, got %d reads", ratingReads)
	}
}

func TestGetRestaurantHandler_NotFound(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("GET", "/restaurant/404", nil)
	req = withPathParam(req, "id", "404")
	rr := httptest.NewRecorder()

	app.GetRestaurantHandler(rr, req)
	checkResponse(t, rr, errorNotFound)
}

// Managers see only their own restaurants in the management listing;
// admins see all.
func TestManagedRestaurantsHandler_Scoping(t *testing.T) {
	var byManagerCalls, allCalls int
	var scopedTo int64
	mdb := &mock.Db{
		ListRestaurantsByManagerFunc: func(f db.RestaurantFilter, managerID int64) ([]db.RestaurantListing, int, error) {
			byManagerCalls++
			scopedTo = managerID
			return nil, 0, nil
		},
		ListRestaurantsFunc: func(f db.RestaurantFilter) ([]db.RestaurantListing, int, error) {
			allCalls++
			return nil, 0, nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("GET", "/userCheck/restaurant", nil)
	req = withClaims(req, db.User{ID: 33, Role: db.RoleManager})
	app.ManagedRestaurantsHandler(httptest.NewRecorder(), req)

	if byManagerCalls != 1 || scopedTo != 33 {
		t.Errorf("expected manager scoping to user 33, got calls=%d scoped=%d", byManagerCalls, scopedTo)
	}

	req = httptest.NewRequest("GET", "/userCheck/restaurant", nil)
	req = withClaims(req, db.User{ID: 1, Role: db.RoleAdmin})
	app.ManagedRestaurantsHandler(httptest.NewRecorder(), req)

	if allCalls != 1 {
		t.Error("expected admins to list all restaurants")
	}
}

// Managers own what they create, whatever the body says.
func TestCreateRestaurantHandler_ManagerOwnership(t *testing.T) {
	var created db.Restaurant
	mdb := &mock.Db{
		CreateRestaurantFunc: func(r db.Restaurant) error {
			created = r
			return nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("POST", "/restaurant", strings.NewReader(
		`{"name":"Chez Test","userId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, db.User{ID: 33, Role: db.RoleManager})
	rr := httptest.NewRecorder()

	app.CreateRestaurantHandler(rr, req)
	checkResponse(t, rr, okCreated)

	if created.UserID != 33 {
		t.Errorf("expected the manager to own the row, got user %d", created.UserID)
	}
}

// A manager cannot touch another manager's restaurant.
func TestDeleteRestaurantHandler_ForeignRowRejected(t *testing.T) {
	mdb := &mock.Db{
		GetRestaurantFunc: func(id int64) (*db.Restaurant, error) {
			return &db.Restaurant{ID: id, UserID: 1}, nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("DELETE", "/restaurant/9", nil)
	req = withPathParam(req, "id", "9")
	req = withClaims(req, db.User{ID: 33, Role: db.RoleManager})
	rr := httptest.NewRecorder()

	app.DeleteRestaurantHandler(rr, req)
	checkResponse(t, rr, errorRoleNotAllowed)
}

func TestListRestaurantsHandler_Filters(t *testing.T) {
	var gotFilter db.RestaurantFilter
	mdb := &mock.Db{
		ListRestaurantsFunc: func(f db.RestaurantFilter) ([]db.RestaurantListing, int, error) {
			gotFilter = f
			return []db.RestaurantListing{}, 0, nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("GET", "/restaurant?provinceId=3&workingTime=19:00&search=pizza&page=2&limit=5", nil)
	rr := httptest.NewRecorder()

	app.ListRestaurantsHandler(rr, req)

	if gotFilter.ProvinceID != 3 {
		t.Errorf("expected provinceId 3, got %d", gotFilter.ProvinceID)
	}
	if gotFilter.WorkingTime != "19:00" {
		t.Errorf("expected workingTime filter, got %q", gotFilter.WorkingTime)
	}
	if gotFilter.Search != "pizza" {
		t.Errorf("expected search filter, got %q", gotFilter.Search)
	}
	if gotFilter.Limit != 5 || gotFilter.Offset != 5 {
		t.Errorf("expected limit 5 offset 5, got limit %d offset %d", gotFilter.Limit, gotFilter.Offset)
	}
}
