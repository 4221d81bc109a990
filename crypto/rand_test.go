package crypto

import (
	"strings"
	"testing"
)

func TestNewActionToken(t *testing.T) {
	token, err := NewActionToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != ActionTokenBytes*2 {
		t.Errorf("expected %d hex characters, got %d", ActionTokenBytes*2, len(token))
	}

	other, err := NewActionToken()
	if err != nil {
		t.Fatal(err)
	}
	if token == other {
		t.Error("two tokens must not collide")
	}
}

func TestRandomString(t *testing.T) {
	s := RandomString(16, AlphanumericAlphabet)
	if len(s) != 16 {
		t.Fatalf("expected length 16, got %d", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(AlphanumericAlphabet, c) {
			t.Errorf("character %q outside alphabet", c)
		}
	}
}

func TestOauth2State(t *testing.T) {
	if got := len(Oauth2State()); got != Oauth2StateLength {
		t.Errorf("expected length %d, got %d", Oauth2StateLength, got)
	}
}
