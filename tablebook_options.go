package tablebook

import (
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"

	"github.com/caasmo/tablebook/cache/ristretto"
	"github.com/caasmo/tablebook/core"
	"github.com/caasmo/tablebook/db"
)

// DefaultLoggerOptions provides default settings for slog handlers.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelDebug,
}

// WithPhusLogger configures slog with phuslu/log's JSON handler. Uses
// DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}

// WithOauthStateCache backs the OAuth2 state nonces with a ristretto cache.
func WithOauthStateCache() core.Option {
	states, err := ristretto.New[string]()
	if err != nil {
		panic(err)
	}
	return core.WithOauthStates(states)
}

// WithRatingCache backs the restaurant rating aggregates with a ristretto
// cache.
func WithRatingCache() core.Option {
	ratings, err := ristretto.New[db.Rating]()
	if err != nil {
		panic(err)
	}
	return core.WithRatings(ratings)
}

// WithMailCooldownCache backs the account email rate limit with a ristretto
// cache.
func WithMailCooldownCache() core.Option {
	cooldowns, err := ristretto.New[string]()
	if err != nil {
		panic(err)
	}
	return core.WithMailCooldowns(cooldowns)
}
