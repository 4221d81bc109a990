package core

import (
	"context"
	"log/slog"

	"github.com/caasmo/tablebook/cache"
	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/router"
)

// Notifier delivers templated HTML email. Failures surface to the calling
// handler, whose response reflects the send outcome.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// App is the application wide context.
// db connections and permanent structs should go here.
//
// For simplicity, all handlers and middleware have App as receiver.
type App struct {
	cfg           *config.Config
	dbApp         db.DbApp
	router        router.Router
	logger        *slog.Logger
	validator     Validator
	authenticator Authenticator
	notifier      Notifier
	// oauthStates holds the one-time state nonces of in-flight OAuth2
	// handshakes, keyed by nonce with the provider name as value. A nonce
	// is consumed (deleted) on first callback.
	oauthStates cache.Cache[string, string]
	// ratings holds recently computed restaurant rating aggregates for
	// the detail endpoint, expiring after cfg.Cache.RatingTTL.
	ratings cache.Cache[string, db.Rating]
	// mailCooldowns records recently emailed (kind, address) pairs so
	// repeat requests inside cfg.Smtp.ResendCooldown skip the send.
	mailCooldowns cache.Cache[string, string]
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) SetConfig(cfg *config.Config) {
	a.cfg = cfg
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbApp
}

func (a *App) DbTokens() db.DbTokens {
	return a.dbApp
}

func (a *App) DbQueue() db.DbQueue {
	return a.dbApp
}

func (a *App) DbStore() db.DbStore {
	return a.dbApp
}

// SetDb sets the database implementation behind all store interfaces.
func (a *App) SetDb(dbApp db.DbApp) {
	if dbApp == nil {
		panic("DbApp cannot be nil")
	}
	a.dbApp = dbApp
}

func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) SetLogger(l *slog.Logger) {
	a.logger = l
}

func (a *App) Validator() Validator {
	return a.validator
}

func (a *App) SetValidator(v Validator) {
	a.validator = v
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

func (a *App) SetAuthenticator(auth Authenticator) {
	a.authenticator = auth
}

func (a *App) Notifier() Notifier {
	return a.notifier
}

func (a *App) SetNotifier(n Notifier) {
	a.notifier = n
}

func (a *App) OauthStates() cache.Cache[string, string] {
	return a.oauthStates
}

func (a *App) SetOauthStates(c cache.Cache[string, string]) {
	a.oauthStates = c
}

func (a *App) Ratings() cache.Cache[string, db.Rating] {
	return a.ratings
}

func (a *App) SetRatings(c cache.Cache[string, db.Rating]) {
	a.ratings = c
}

func (a *App) MailCooldowns() cache.Cache[string, string] {
	return a.mailCooldowns
}

func (a *App) SetMailCooldowns(c cache.Cache[string, string]) {
	a.mailCooldowns = c
}
