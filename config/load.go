package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Environment variable names for secrets. Secrets are never read from the
// config file.
const (
	EnvJwtSecret            = "TABLEBOOK_JWT_SECRET"
	EnvSmtpPassword         = "TABLEBOOK_SMTP_PASSWORD"
	EnvGoogleClientID       = "OAUTH2_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret   = "OAUTH2_GOOGLE_CLIENT_SECRET"
	EnvFacebookClientID     = "OAUTH2_FACEBOOK_CLIENT_ID"
	EnvFacebookClientSecret = "OAUTH2_FACEBOOK_CLIENT_SECRET"
)

// Load reads the TOML config file at path on top of the defaults, then fills
// secrets from the environment and validates the result. An empty path loads
// defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	cfg.fillEnv()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillEnv() {
	c.Jwt.AuthSecret = os.Getenv(EnvJwtSecret)
	c.Smtp.Password = os.Getenv(EnvSmtpPassword)

	if p, ok := c.Providers[ProviderGoogle]; ok {
		p.ClientID = os.Getenv(EnvGoogleClientID)
		p.ClientSecret = os.Getenv(EnvGoogleClientSecret)
		c.Providers[ProviderGoogle] = p
	}
	if p, ok := c.Providers[ProviderFacebook]; ok {
		p.ClientID = os.Getenv(EnvFacebookClientID)
		p.ClientSecret = os.Getenv(EnvFacebookClientSecret)
		c.Providers[ProviderFacebook] = p
	}
}
