package oauth2

import (
	"encoding/json"
	"fmt"

	"github.com/caasmo/tablebook/config"
)

// Profile is the standardized external identity returned by a provider's
// user-info endpoint.
type Profile struct {
	Email      string
	FirstName  string
	LastName   string
	FacebookID string
}

// ProfileFromUserInfo decodes a provider user-info response body into a
// Profile. Each provider has its own field names.
func ProfileFromUserInfo(data []byte, providerName string) (*Profile, error) {
	switch providerName {
	case config.ProviderGoogle:
		extracted := struct {
			Email         string `json:"email"`
			EmailVerified bool   `json:"email_verified"`
			GivenName     string `json:"given_name"`
			FamilyName    string `json:"family_name"`
		}{}
		if err := json.Unmarshal(data, &extracted); err != nil {
			return nil, fmt.Errorf("failed to decode google user info: %w", err)
		}
		if extracted.Email == "" {
			return nil, fmt.Errorf("google user info has no email")
		}
		return &Profile{
			Email:     extracted.Email,
			FirstName: extracted.GivenName,
			LastName:  extracted.FamilyName,
		}, nil

	case config.ProviderFacebook:
		extracted := struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}{}
		if err := json.Unmarshal(data, &extracted); err != nil {
			return nil, fmt.Errorf("failed to decode facebook user info: %w", err)
		}
		if extracted.ID == "" {
			return nil, fmt.Errorf("facebook user info has no id")
		}
		return &Profile{
			Email:      extracted.Email,
			FirstName:  extracted.FirstName,
			LastName:   extracted.LastName,
			FacebookID: extracted.ID,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}
