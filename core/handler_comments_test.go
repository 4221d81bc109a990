package core

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/mock"
)

func TestCreateCommentHandler(t *testing.T) {
	testCases := []struct {
		name        string
		requestBody string
		want        jsonResponse
	}{
		{
			name:        "missing restaurant",
			requestBody: `{"content":"great","rate":5}`,
			want:        errorMissingFields,
		},
		{
			name:        "rate out of range",
			requestBody: `{"restaurantId":9,"content":"great","rate":6}`,
			want:        errorInvalidRequest,
		},
		{
			name:        "success",
			requestBody: `{"restaurantId":9,"content":"great","rate":5}`,
			want:        okCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var created db.Comment
			mdb := &mock.Db{
				CreateCommentFunc: func(c db.Comment) error {
					created = c
					return nil
				},
			}
			app := newTestApp(t, mdb)

			req := httptest.NewRequest("POST", "/comment", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			req = withClaims(req, db.User{ID: 21, Role: db.RoleUser})
			rr := httptest.NewRecorder()

			app.CreateCommentHandler(rr, req)
			checkResponse(t, rr, tc.want)

			if tc.want.status == 201 && created.UserID != 21 {
				t.Errorf("comment must be attributed to the caller, got user %d", created.UserID)
			}
		})
	}
}

// Plain users may only touch their own comments; staff may touch any.
func TestDeleteCommentHandler_Ownership(t *testing.T) {
	testCases := []struct {
		name   string
		caller db.User
		want   jsonResponse
	}{
		{name: "owner", caller: db.User{ID: 21, Role: db.RoleUser}, want: okDeleted},
		{name: "other user", caller: db.User{ID: 99, Role: db.RoleUser}, want: errorRoleNotAllowed},
		{name: "admin", caller: db.User{ID: 1, Role: db.RoleAdmin}, want: okDeleted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mdb := &mock.Db{
				GetCommentFunc: func(id int64) (*db.Comment, error) {
					return &db.Comment{ID: id, UserID: 21, RestaurantID: 9}, nil
				},
			}
			app := newTestApp(t, mdb)

			req := httptest.NewRequest("DELETE", "/comment/5", nil)
			req = withPathParam(req, "id", "5")
			req = withClaims(req, tc.caller)
			rr := httptest.NewRecorder()

			app.DeleteCommentHandler(rr, req)
			checkResponse(t, rr, tc.want)
		})
	}
}
