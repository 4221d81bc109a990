package core

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/mock"
)

func TestUpdateUserHandler_ForeignRowRejected(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("PUT", "/user/5", strings.NewReader(`{"firstName":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withPathParam(req, "id", "5")
	req = withClaims(req, db.User{ID: 99, Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.UpdateUserHandler(rr, req)
	checkResponse(t, rr, errorRoleNotAllowed)
}

// A self-update returns a fresh session token carrying the new profile.
func TestUpdateUserHandler_SelfUpdateReissuesToken(t *testing.T) {
	row := db.User{ID: 5, Email: "me@example.com", FirstName: "Old", Role: db.RoleUser}

	mdb := &mock.Db{
		GetUserByIDFunc: func(id int64) (*db.User, error) {
			u := row
			return &u, nil
		},
		UpdateUserFunc: func(u db.User) error {
			row.FirstName = u.FirstName
			return nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("PUT", "/user/5", strings.NewReader(`{"firstName":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withPathParam(req, "id", "5")
	req = withClaims(req, db.User{ID: 5, Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.UpdateUserHandler(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data struct {
			NewToken string `json:"newToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.NewToken == "" {
		t.Fatal("expected a reissued token on self-update")
	}

	claims, err := crypto.ParseSessionToken(resp.Data.NewToken, []byte(testJwtSecret))
	if err != nil {
		t.Fatalf("reissued token failed verification: %v", err)
	}
	if claims.FirstName != "New" {
		t.Errorf("reissued token must carry the new profile, got %q", claims.FirstName)
	}
}

// Role changes require the admin role; a self-update cannot escalate.
func TestUpdateUserHandler_RoleEscalationIgnored(t *testing.T) {
	var updated db.User
	mdb := &mock.Db{
		GetUserByIDFunc: func(id int64) (*db.User, error) {
			return &db.User{ID: id, Email: "me@example.com", Role: db.RoleUser}, nil
		},
		UpdateUserFunc: func(u db.User) error {
			updated = u
			return nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("PUT", "/user/5", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withPathParam(req, "id", "5")
	req = withClaims(req, db.User{ID: 5, Role: db.RoleUser})
	rr := httptest.NewRecorder()

	app.UpdateUserHandler(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if updated.Role != db.RoleUser {
		t.Errorf("expected role to stay user, got %q", updated.Role)
	}
}

func TestCreateUserHandler(t *testing.T) {
	testCases := []struct {
		name        string
		requestBody string
		want        jsonResponse
	}{
		{
			name:        "invalid role",
			requestBody: `{"email":"a@example.com","password":"password123","role":"superuser"}`,
			want:        errorInvalidRequest,
		},
		{
			name:        "missing password",
			requestBody: `{"email":"a@example.com"}`,
			want:        errorMissingFields,
		},
		{
			name:        "success",
			requestBody: `{"email":"a@example.com","password":"password123","role":"manager"}`,
			want:        okCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var created db.User
			mdb := &mock.Db{
				CreateUserFunc: func(u db.User) (*db.User, error) {
					created = u
					u.ID = 1
					return &u, nil
				},
			}
			app := newTestApp(t, mdb)

			req := httptest.NewRequest("POST", "/user", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			req = withClaims(req, db.User{ID: 1, Role: db.RoleAdmin})
			rr := httptest.NewRecorder()

			app.CreateUserHandler(rr, req)
			checkResponse(t, rr, tc.want)

			if tc.want.status == 201 {
				if !created.Verified {
					t.Error("admin-created accounts must be verified")
				}
				if created.Role != db.RoleManager {
					t.Errorf("expected role manager, got %q", created.Role)
				}
				if !crypto.CheckPassword("password123", created.Password) {
					t.Error("stored hash does not match the password")
				}
			}
		})
	}
}
