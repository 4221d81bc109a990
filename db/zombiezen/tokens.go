package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// InsertActionToken stores a fresh single-use token row.
func (d *Db) InsertActionToken(t db.ActionToken) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO tokens (email, token, purpose) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{t.Email, t.Token, t.Purpose},
		})
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// GetActionToken looks up a token row by its full identity. Returns nil
// without error when no row matches; the caller treats that as an invalid
// token.
func (d *Db) GetActionToken(email, token, purpose string) (*db.ActionToken, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var row *db.ActionToken
	err = sqlitex.Execute(conn,
		`SELECT email, token, purpose, created FROM tokens
		WHERE email = ? AND token = ? AND purpose = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				created, err := db.TimeParse(stmt.GetText("created"))
				if err != nil {
					return fmt.Errorf("error parsing created time: %w", err)
				}
				row = &db.ActionToken{
					Email:   stmt.GetText("email"),
					Token:   stmt.GetText("token"),
					Purpose: stmt.GetText("purpose"),
					Created: created,
				}
				return nil
			},
			Args: []interface{}{email, token, purpose},
		})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteActionToken removes one redeemed token row.
func (d *Db) DeleteActionToken(email, token string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM tokens WHERE email = ? AND token = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{email, token},
		})
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// DeleteActionTokens removes all outstanding tokens of one purpose for an
// email, so that issuing a new token invalidates its predecessors.
func (d *Db) DeleteActionTokens(email, purpose string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM tokens WHERE email = ? AND purpose = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{email, purpose},
		})
	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}
