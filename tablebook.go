package tablebook

import (
	"context"
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/core"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/db/zombiezen"
	"github.com/caasmo/tablebook/mail"
	"github.com/caasmo/tablebook/migrations"
	"github.com/caasmo/tablebook/queue"
	"github.com/caasmo/tablebook/queue/executor"
	"github.com/caasmo/tablebook/queue/handlers"
	scl "github.com/caasmo/tablebook/queue/scheduler"
	"github.com/caasmo/tablebook/router/httprouter"
	"github.com/caasmo/tablebook/server"
)

// New builds the application from the config file at configPath and the
// given SQLite pool: it applies pending migrations, wires the route table
// and assembles the scheduler and server. The caller owns the pool's
// lifecycle.
func New(configPath string, pool *sqlitex.Pool, opts ...core.Option) (*core.App, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := migrate(pool); err != nil {
		return nil, nil, err
	}

	dbApp, err := zombiezen.New(pool)
	if err != nil {
		return nil, nil, err
	}

	mailer := mail.New(cfg.Smtp)

	allOpts := []core.Option{
		core.WithConfig(cfg),
		core.WithDb(dbApp),
		core.WithRouter(httprouter.New()),
		core.WithNotifier(mailer),
	}
	allOpts = append(allOpts, WithOauthStateCache())
	allOpts = append(allOpts, WithRatingCache())
	allOpts = append(allOpts, WithMailCooldownCache())
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		return nil, nil, err
	}

	route(cfg, app)

	scheduler := setupScheduler(cfg, dbApp, mailer, app)
	srv := server.NewServer(cfg.Server, app.Router(), scheduler, app.Logger())

	return app, srv, nil
}

// NewZombiezenPool creates a SQLite connection pool with defaults suitable
// for the application (WAL mode, pool sized to the CPU count). Application
// code sharing the database must use this same pool to avoid SQLITE_BUSY.
func NewZombiezenPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

func migrate(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get connection for migrations: %w", err)
	}
	defer pool.Put(conn)
	return zombiezen.ApplyMigrations(conn, migrations.Schema())
}

func setupScheduler(cfg *config.Config, dbApp db.DbApp, mailer *mail.Mailer, app *core.App) *scl.Scheduler {
	hdls := make(map[string]executor.JobHandler)
	hdls[queue.JobTypeBookingNotice] = handlers.NewBookingNoticeHandler(dbApp, cfg, mailer, app.Logger())
	return scl.NewScheduler(cfg.Scheduler, dbApp, executor.NewExecutor(hdls), app.Logger())
}
