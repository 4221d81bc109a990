package config

import (
	"errors"
	"fmt"
)

// minJwtSecretLength mirrors crypto.MinSecretLength. The signing key is
// process-wide configuration; a missing or short key is fatal at startup.
const minJwtSecretLength = 32

// Validate checks the invariants of a loaded Config. It returns the first
// violation found.
func Validate(c *Config) error {
	if c == nil {
		return errors.New("config: nil config")
	}
	if len(c.Jwt.AuthSecret) < minJwtSecretLength {
		return fmt.Errorf("config: %s must be set and at least %d bytes", EnvJwtSecret, minJwtSecretLength)
	}
	if c.Jwt.SessionDuration.Duration <= 0 {
		return errors.New("config: jwt.session_duration must be positive")
	}
	if c.ActionTokens.RegisterTTL.Duration <= 0 || c.ActionTokens.ForgotTTL.Duration <= 0 {
		return errors.New("config: action token TTLs must be positive")
	}
	if c.Server.Addr == "" {
		return errors.New("config: server.addr must be set")
	}
	if c.Scheduler.Interval.Duration <= 0 {
		return errors.New("config: scheduler.interval must be positive")
	}
	if c.Scheduler.MaxJobsPerTick <= 0 {
		return errors.New("config: scheduler.max_jobs_per_tick must be positive")
	}
	if c.Uploads.Dir == "" {
		return errors.New("config: uploads.dir must be set")
	}
	if c.Smtp.ResendCooldown.Duration <= 0 {
		return errors.New("config: smtp.resend_cooldown must be positive")
	}
	if c.Cache.RatingTTL.Duration <= 0 {
		return errors.New("config: cache.rating_ttl must be positive")
	}
	if c.List.DefaultPageSize <= 0 {
		return errors.New("config: list.default_page_size must be positive")
	}
	for name, p := range c.Providers {
		if p.AuthURL == "" || p.TokenURL == "" || p.UserInfoURL == "" {
			return fmt.Errorf("config: oauth2 provider %s is missing endpoint URLs", name)
		}
	}
	return nil
}
