package oauth2

import (
	"testing"

	"github.com/caasmo/tablebook/config"
)

func TestProfileFromUserInfo_Google(t *testing.T) {
	data := []byte(`{
		"sub": "110248495921238986420",
		"email": "user@example.com",
		"email_verified": true,
		"given_name": "Given",
		"family_name": "Family"
	}`)

	profile, err := ProfileFromUserInfo(data, config.ProviderGoogle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != "user@example.com" {
		t.Errorf("expected email, got %q", profile.Email)
	}
	if profile.FirstName != "Given" || profile.LastName != "Family" {
		t.Errorf("expected names, got %q %q", profile.FirstName, profile.LastName)
	}
	if profile.FacebookID != "" {
		t.Errorf("google profiles carry no facebook id, got %q", profile.FacebookID)
	}
}

func TestProfileFromUserInfo_GoogleWithoutEmail(t *testing.T) {
	if _, err := ProfileFromUserInfo([]byte(`{"sub":"123"}`), config.ProviderGoogle); err == nil {
		t.Fatal("expected an error for a google profile without email")
	}
}

func TestProfileFromUserInfo_Facebook(t *testing.T) {
	data := []byte(`{
		"id": "10158913276",
		"first_name": "Given",
		"last_name": "Family"
	}`)

	profile, err := ProfileFromUserInfo(data, config.ProviderFacebook)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.FacebookID != "10158913276" {
		t.Errorf("expected facebook id, got %q", profile.FacebookID)
	}
	// Facebook does not always release an email; absence is fine.
	if profile.Email != "" {
		t.Errorf("expected empty email, got %q", profile.Email)
	}
}

func TestProfileFromUserInfo_FacebookWithoutID(t *testing.T) {
	if _, err := ProfileFromUserInfo([]byte(`{"email":"x@example.com"}`), config.ProviderFacebook); err == nil {
		t.Fatal("expected an error for a facebook profile without id")
	}
}

func TestProfileFromUserInfo_UnknownProvider(t *testing.T) {
	if _, err := ProfileFromUserInfo([]byte(`{}`), "github"); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestProfileFromUserInfo_MalformedJSON(t *testing.T) {
	if _, err := ProfileFromUserInfo([]byte(`{`), config.ProviderGoogle); err == nil {
		t.Fatal("expected an error for malformed json")
	}
}
