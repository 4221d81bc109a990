package zombiezen

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Db implements the database interfaces on a zombiezen sqlite pool.
type Db struct {
	pool *sqlitex.Pool
}

// Verify interface implementations
var _ db.DbAuth = (*Db)(nil)
var _ db.DbTokens = (*Db)(nil)
var _ db.DbQueue = (*Db)(nil)
var _ db.DbStore = (*Db)(nil)
var _ db.DbApp = (*Db)(nil)

// New creates a new Db instance using an existing pool provided by the user.
// The lifecycle of the pool is managed externally; this type does not close
// it.
func New(pool *sqlitex.Pool) (*Db, error) {
	if pool == nil {
		return nil, fmt.Errorf("provided pool cannot be nil")
	}
	return &Db{pool: pool}, nil
}

// mapConstraintErr translates sqlite unique constraint failures into the
// portable sentinel.
func mapConstraintErr(err error) error {
	code := sqlite.ErrCode(err)
	if code == sqlite.ResultConstraintUnique || code == sqlite.ResultConstraintPrimaryKey {
		return db.ErrConstraintUnique
	}
	return err
}

// ApplyMigrations executes all .sql files from the given filesystem against
// the database connection. It walks the directory structure recursively.
func ApplyMigrations(conn *sqlite.Conn, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}

		sqlBytes, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("could not read embedded migration file %s: %w", path, err)
		}

		if err := sqlitex.ExecuteScript(conn, string(sqlBytes), nil); err != nil {
			return fmt.Errorf("failed to execute migration file %s: %w", path, err)
		}
		return nil
	})
}
