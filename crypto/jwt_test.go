package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/caasmo/tablebook/db"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testUser() db.User {
	return db.User{
		ID:        7,
		Email:     "user@example.com",
		FirstName: "Test",
		LastName:  "User",
		Phone:     "555-0100",
		Role:      db.RoleManager,
		Verified:  true,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, expiry, err := NewSessionToken(testUser(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if time.Until(expiry) <= 0 {
		t.Error("expected a future expiry")
	}

	claims, err := ParseSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	user := claims.User()
	want := testUser()
	if user != want {
		t.Errorf("round-tripped user mismatch:\n got %+v\nwant %+v", user, want)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, _, err := NewSessionToken(testUser(), testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ParseSessionToken(token, testSecret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, _, err := NewSessionToken(testUser(), testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	other := []byte("ffffffffffffffffffffffffffffffff")
	_, err = ParseSessionToken(token, other)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, err := ParseSessionToken("not.a.jwt", testSecret)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewSessionToken_ShortSecret(t *testing.T) {
	_, _, err := NewSessionToken(testUser(), []byte("short"), time.Hour)
	if !errors.Is(err, ErrInvalidSecretLength) {
		t.Errorf("expected ErrInvalidSecretLength, got %v", err)
	}
}
