package mail

import (
	"strings"
	"testing"
)

func TestVerificationBody(t *testing.T) {
	body := VerificationBody("http://localhost:3000", "a+b@example.com", "cafebabe")

	if !strings.Contains(body, "http://localhost:3000/confirm-user?") {
		t.Error("expected a confirm-user link")
	}
	// Query values must be escaped.
	if !strings.Contains(body, "email=a%2Bb%40example.com") {
		t.Errorf("expected an escaped email, got: %s", body)
	}
	if !strings.Contains(body, "token=cafebabe") {
		t.Error("expected the token in the link")
	}
}

func TestPasswordResetBody(t *testing.T) {
	body := PasswordResetBody("http://localhost:3000", "user@example.com", "cafebabe")

	if !strings.Contains(body, "http://localhost:3000/reset-password?") {
		t.Error("expected a reset-password link")
	}
	if !strings.Contains(body, "token=cafebabe") {
		t.Error("expected the token in the link")
	}
}

func TestBookingBodies(t *testing.T) {
	notice := BookingNotice{
		Recipient:      "Alex",
		RestaurantName: "Chez Test",
		Date:           "28/08/2026",
		Time:           "19:30",
		People:         "4",
	}

	for name, body := range map[string]string{
		"customer": CustomerBookingBody(notice),
		"manager":  ManagerBookingBody(notice),
	} {
		for _, want := range []string{"Alex", "Chez Test", "28/08/2026", "19:30", "4"} {
			if !strings.Contains(body, want) {
				t.Errorf("%s body missing %q", name, want)
			}
		}
	}
}
