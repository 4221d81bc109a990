package core

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/mock"
)

func TestVerifyUserHandler_UnknownToken(t *testing.T) {
	app := newTestApp(t, &mock.Db{})

	req := httptest.NewRequest("POST", "/auth/verifiedUser", strings.NewReader(
		`{"email":"user@example.com","token":"deadbeef"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.VerifyUserHandler(rr, req)
	checkResponse(t, rr, errorInvalidActionToken)
}

func TestVerifyUserHandler_ExpiredToken(t *testing.T) {
	var deletedToken string
	mdb := &mock.Db{
		GetActionTokenFunc: func(email, token, purpose string) (*db.ActionToken, error) {
			return &db.ActionToken{
				Email:   email,
				Token:   token,
				Purpose: purpose,
				Created: time.Now().Add(-48 * time.Hour),
			}, nil
		},
		DeleteActionTokenFunc: func(email, token string) error {
			deletedToken = token
			return nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("POST", "/auth/verifiedUser", strings.NewReader(
		`{"email":"user@example.com","token":"deadbeef"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.VerifyUserHandler(rr, req)
	checkResponse(t, rr, errorInvalidActionToken)

	// The failed redemption also removes the useless row.
	if deletedToken != "deadbeef" {
		t.Errorf("expected the expired token row to be removed, got %q", deletedToken)
	}
}

// A redeemed token is destroyed: the first redemption verifies the account
// and removes every register token for the email, so the second attempt
// with the same token fails the lookup.
func TestVerifyUserHandler_SingleUse(t *testing.T) {
	tokens := map[string]*db.ActionToken{
		"cafebabe": {
			Email:   "user@example.com",
			Token:   "cafebabe",
			Purpose: db.PurposeRegister,
			Created: time.Now(),
		},
	}
	user := &db.User{ID: 7, Email: "user@example.com", Verified: false}

	mdb := &mock.Db{
		GetActionTokenFunc: func(email, token, purpose string) (*db.ActionToken, error) {
			return tokens[token], nil
		},
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return user, nil
		},
		MarkVerifiedFunc: func(userID int64) error {
			user.Verified = true
			return nil
		},
		DeleteActionTokensFunc: func(email, purpose string) error {
			for k := range tokens {
				delete(tokens, k)
			}
			return nil
		},
	}
	app := newTestApp(t, mdb)

	body := `{"email":"user@example.com","token":"cafebabe"}`

	req := httptest.NewRequest("POST", "/auth/verifiedUser", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.VerifyUserHandler(rr, req)
	checkResponse(t, rr, okEmailVerified)

	if !user.Verified {
		t.Fatal("expected user to be marked verified")
	}

	req = httptest.NewRequest("POST", "/auth/verifiedUser", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	app.VerifyUserHandler(rr, req)
	checkResponse(t, rr, errorInvalidActionToken)
}

func TestVerifyUserHandler_AlreadyVerified(t *testing.T) {
	deleted := false
	mdb := &mock.Db{
		GetActionTokenFunc: func(email, token, purpose string) (*db.ActionToken, error) {
			return &db.ActionToken{Email: email, Token: token, Purpose: purpose, Created: time.Now()}, nil
		},
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return &db.User{ID: 7, Email: email, Verified: true}, nil
		},
		DeleteActionTokenFunc: func(email, token string) error {
			deleted = true
			return nil
		},
	}
	app := newTestApp(t, mdb)

	req := httptest.NewRequest("POST", "/auth/verifiedUser", strings.NewReader(
		`{"email":"user@example.com","token":"cafebabe"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.VerifyUserHandler(rr, req)
	checkResponse(t, rr, errorAlreadyVerified)

	if !deleted {
		t.Error("expected the token to be spent even for an already verified account")
	}
}
