package config

import "time"

// Provider names. The two bridges the application knows how to map profiles
// for.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// NewDefaultConfig creates a Config with sensible defaults. Secrets are not
// defaulted; they come from the environment (see Load).
func NewDefaultConfig() *Config {
	return &Config{
		Server: Server{
			Addr:                    ":8080",
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 5 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			BaseURL:                 "http://localhost:8080",
		},
		Jwt: Jwt{
			SessionDuration: Duration{Duration: 7 * 24 * time.Hour},
		},
		ActionTokens: ActionTokens{
			RegisterTTL: Duration{Duration: 24 * time.Hour},
			ForgotTTL:   Duration{Duration: 1 * time.Hour},
		},
		Smtp: Smtp{
			Host:        "smtp.gmail.com",
			Port:        465,
			FromName:       "Booking restaurant",
			FromAddress:    "",
			ResendCooldown: Duration{Duration: 2 * time.Minute},
		},
		Cache: Cache{
			RatingTTL: Duration{Duration: 1 * time.Minute},
		},
		OAuth2: OAuth2{
			ClientRedirectURL: "http://localhost:3000/login-success",
			StateTTL:          Duration{Duration: 10 * time.Minute},
			DefaultPassword:   "123456a@A",
		},
		Providers: map[string]OAuth2Provider{
			ProviderGoogle: {
				Name:        ProviderGoogle,
				DisplayName: "Google",
				RedirectURL: "http://localhost:8080/auth/withGoogle/callback",
				AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL:    "https://oauth2.googleapis.com/token",
				UserInfoURL: "https://www.googleapis.com/oauth2/v3/userinfo",
				Scopes: []string{
					"https://www.googleapis.com/auth/userinfo.profile",
					"https://www.googleapis.com/auth/userinfo.email",
				},
			},
			ProviderFacebook: {
				Name:        ProviderFacebook,
				DisplayName: "Facebook",
				RedirectURL: "http://localhost:8080/auth/withFacebook/callback",
				AuthURL:     "https://www.facebook.com/v18.0/dialog/oauth",
				TokenURL:    "https://graph.facebook.com/v18.0/oauth/access_token",
				UserInfoURL: "https://graph.facebook.com/me?fields=id,email,first_name,last_name,name",
				Scopes:      []string{"email", "public_profile"},
			},
		},
		Scheduler: Scheduler{
			Interval:              Duration{Duration: 60 * time.Second},
			MaxJobsPerTick:        10,
			ConcurrencyMultiplier: 2,
		},
		Uploads: Uploads{
			Dir:     "uploads",
			MaxSize: 50 << 20,
		},
		List: List{
			DefaultPageSize: 10,
		},
		Client: Client{
			BaseURL: "http://localhost:3000",
		},
	}
}
