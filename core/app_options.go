package core

import (
	"fmt"
	"log/slog"

	"github.com/caasmo/tablebook/cache"
	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/router"
)

type Option func(*App)

// WithConfig sets the application configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

// WithDb sets the database implementation.
func WithDb(d db.DbApp) Option {
	return func(a *App) {
		a.dbApp = d
	}
}

// WithRouter sets the router implementation.
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithLogger sets the logger implementation.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithNotifier sets the email delivery implementation.
func WithNotifier(n Notifier) Option {
	return func(a *App) {
		a.notifier = n
	}
}

// WithOauthStates sets the cache holding in-flight OAuth2 state nonces.
func WithOauthStates(c cache.Cache[string, string]) Option {
	return func(a *App) {
		a.oauthStates = c
	}
}

// WithRatings sets the cache holding restaurant rating aggregates.
func WithRatings(c cache.Cache[string, db.Rating]) Option {
	return func(a *App) {
		a.ratings = c
	}
}

// WithMailCooldowns sets the cache that rate limits account emails.
func WithMailCooldowns(c cache.Cache[string, string]) Option {
	return func(a *App) {
		a.mailCooldowns = c
	}
}

// NewApp creates an App from the given options and fills in the default
// validator and authenticator.
func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.cfg == nil {
		return nil, fmt.Errorf("config is required (use WithConfig)")
	}
	if a.dbApp == nil {
		return nil, fmt.Errorf("database is required (use WithDb)")
	}
	if a.logger == nil {
		return nil, fmt.Errorf("logger is required (use WithLogger)")
	}

	if a.validator == nil {
		a.validator = NewValidator()
	}
	if a.authenticator == nil {
		a.authenticator = NewDefaultAuthenticator(a.cfg, a.logger)
	}

	return a, nil
}
