package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration for TOML text (un)marshalling, so config
// files can say interval = "60s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Server       Server                    `toml:"server"`
	Jwt          Jwt                       `toml:"jwt"`
	ActionTokens ActionTokens              `toml:"action_tokens"`
	Smtp         Smtp                      `toml:"smtp"`
	OAuth2       OAuth2                    `toml:"oauth2"`
	Providers    map[string]OAuth2Provider `toml:"oauth2_providers"`
	Scheduler    Scheduler                 `toml:"scheduler"`
	Uploads      Uploads                   `toml:"uploads"`
	Cache        Cache                     `toml:"cache"`
	List         List                      `toml:"list"`
	Client       Client                    `toml:"client"`
}

// Client locates the browser front end. The links embedded in emails point
// at its pages.
type Client struct {
	BaseURL string `toml:"base_url"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	// BaseURL is the externally visible origin, used to build the links
	// embedded in emails.
	BaseURL string `toml:"base_url"`
}

type Jwt struct {
	// AuthSecret signs session credentials. Loaded from the environment,
	// never from the config file. Minimum 32 bytes; missing or short is a
	// fatal startup condition.
	AuthSecret      string   `toml:"-"`
	SessionDuration Duration `toml:"session_duration"`
}

// Secret returns the signing secret as bytes.
func (j Jwt) Secret() []byte { return []byte(j.AuthSecret) }

// ActionTokens holds the validity windows for the single-use email tokens.
// A redeemed token older than its window is rejected and removed.
type ActionTokens struct {
	RegisterTTL Duration `toml:"register_ttl"`
	ForgotTTL   Duration `toml:"forgot_ttl"`
}

type Smtp struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Username    string `toml:"username"`
	Password    string `toml:"-"` // from environment
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
	// ResendCooldown bounds how often the same kind of account email is
	// sent to one address. Repeat requests inside the window are answered
	// without sending again.
	ResendCooldown Duration `toml:"resend_cooldown"`
}

// Cache holds the lifetimes of the in-process caches.
type Cache struct {
	// RatingTTL is how long a restaurant's rating aggregates may be
	// served without recomputing them from the comments.
	RatingTTL Duration `toml:"rating_ttl"`
}

type OAuth2 struct {
	// ClientRedirectURL is the front-end page the callback redirects to,
	// with the issued credential (or empty string on failure) appended as
	// the token query parameter.
	ClientRedirectURL string `toml:"client_redirect_url"`
	// StateTTL bounds how long an authorization redirect may take before
	// its state nonce expires.
	StateTTL Duration `toml:"state_ttl"`
	// DefaultPassword is the fixed system password assigned to accounts
	// created through a provider. Stored hashed like any other password.
	DefaultPassword string `toml:"default_password"`
}

type OAuth2Provider struct {
	Name         string   `toml:"name"`
	DisplayName  string   `toml:"display_name"`
	ClientID     string   `toml:"-"` // from environment
	ClientSecret string   `toml:"-"` // from environment
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	UserInfoURL  string   `toml:"user_info_url"`
	Scopes       []string `toml:"scopes"`
}

type Scheduler struct {
	Interval              Duration `toml:"interval"`
	MaxJobsPerTick        int      `toml:"max_jobs_per_tick"`
	ConcurrencyMultiplier int      `toml:"concurrency_multiplier"`
}

type Uploads struct {
	Dir     string `toml:"dir"`
	MaxSize int64  `toml:"max_size"`
}

// List holds defaults for the paginated list endpoints.
type List struct {
	DefaultPageSize int `toml:"default_page_size"`
}
