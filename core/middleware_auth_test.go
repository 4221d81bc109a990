package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caasmo/tablebook/crypto"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/mock"
)

func sessionTokenFor(t *testing.T, user db.User) string {
	t.Helper()
	token, _, err := crypto.NewSessionToken(user, []byte(testJwtSecret), time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	validToken := sessionTokenFor(t, db.User{ID: 7, Email: "user@example.com", Role: db.RoleUser})
	expiredToken, _, err := crypto.NewSessionToken(
		db.User{ID: 7, Email: "user@example.com"}, []byte(testJwtSecret), -time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name       string
		authHeader string
		want       jsonResponse
		wantPass   bool
	}{
		{name: "no header", authHeader: "", want: errorNoAuthHeader},
		{name: "wrong scheme", authHeader: "Basic dXNlcjpwYXNz", want: errorInvalidTokenFormat},
		{name: "garbage token", authHeader: "Bearer not.a.jwt", want: errorJwtInvalidToken},
		{name: "expired token", authHeader: "Bearer " + expiredToken, want: errorJwtTokenExpired},
		{name: "valid token", authHeader: "Bearer " + validToken, wantPass: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotClaims *crypto.SessionClaims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims = AuthClaims(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/auth/getMe", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			app.RequireAuth(next).ServeHTTP(rr, req)

			if tc.wantPass {
				if rr.Code != http.StatusOK {
					t.Fatalf("expected request to pass, got %d: %s", rr.Code, rr.Body.String())
				}
				if gotClaims == nil || gotClaims.UserID != 7 {
					t.Errorf("expected claims for user 7, got %+v", gotClaims)
				}
				return
			}
			checkResponse(t, rr, tc.want)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	app := newTestApp(t, &mock.Db{})
	guard := app.RequireRoles(db.RoleAdmin, db.RoleManager)

	testCases := []struct {
		name     string
		role     string
		wantPass bool
	}{
		{name: "admin allowed", role: db.RoleAdmin, wantPass: true},
		{name: "manager allowed", role: db.RoleManager, wantPass: true},
		{name: "user rejected", role: db.RoleUser, wantPass: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			token := sessionTokenFor(t, db.User{ID: 1, Email: "x@example.com", Role: tc.role})
			req := httptest.NewRequest("DELETE", "/restaurant/1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()

			guard(next).ServeHTTP(rr, req)

			if tc.wantPass {
				if rr.Code != http.StatusOK {
					t.Fatalf("expected request to pass, got %d", rr.Code)
				}
				return
			}
			checkResponse(t, rr, errorRoleNotAllowed)
		})
	}
}
