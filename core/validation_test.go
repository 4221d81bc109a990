package core

import (
	"net/http/httptest"
	"testing"
)

func TestContentType(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{name: "exact match", contentType: "application/json"},
		{name: "with charset", contentType: "application/json; charset=utf-8"},
		{name: "missing", contentType: "", wantErr: true},
		{name: "wrong type", contentType: "text/plain", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}

			resp, err := v.ContentType(req, MimeTypeJSON)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if resp.status != errorInvalidContentType.status {
					t.Errorf("expected status %d, got %d", errorInvalidContentType.status, resp.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.example.co"}
	invalid := []string{"", "plainstring", "@example.com", "user@"}

	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %q to validate: %v", email, err)
		}
	}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("expected %q to be rejected", email)
		}
	}
}
