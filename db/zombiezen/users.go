package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const userColumns = `id, email, first_name, last_name, phone, password, role, verified, facebook_id, created, updated`

// newUserFromStmt creates a User struct from a SQLite statement row.
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	return &db.User{
		ID:         stmt.GetInt64("id"),
		Email:      stmt.GetText("email"),
		FirstName:  stmt.GetText("first_name"),
		LastName:   stmt.GetText("last_name"),
		Phone:      stmt.GetText("phone"),
		Password:   stmt.GetText("password"),
		Role:       stmt.GetText("role"),
		Verified:   stmt.GetInt64("verified") != 0,
		FacebookID: stmt.GetText("facebook_id"),
		Created:    created,
		Updated:    updated,
	}, nil
}

// getUserBy runs a single-row user lookup. The user stays nil when no row
// matches; an error means a store failure.
func (d *Db) getUserBy(column string, arg any) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{arg},
		})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	return d.getUserBy("email", email)
}

func (d *Db) GetUserByID(id int64) (*db.User, error) {
	return d.getUserBy("id", id)
}

func (d *Db) GetUserByFacebookID(facebookID string) (*db.User, error) {
	return d.getUserBy("facebook_id", facebookID)
}

// CreateUser inserts a new user row and returns it with the generated id and
// timestamps. A duplicate email or facebook id yields ErrConstraintUnique.
func (d *Db) CreateUser(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var created *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (email, first_name, last_name, phone, password, role, verified, facebook_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.Email,
				user.FirstName,
				user.LastName,
				user.Phone,
				user.Password,
				user.Role,
				user.Verified,
				user.FacebookID,
			},
		})
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return created, nil
}

// MarkVerified flips the verified flag of a user row.
func (d *Db) MarkVerified(userID int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET verified = 1,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{userID},
		})
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash of a user.
func (d *Db) UpdatePassword(userID int64, passwordHash string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET password = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{passwordHash, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrUserNotFound
	}
	return nil
}

// ListUsers returns one page of users plus the unpaginated total, for the
// admin listing. Search matches names, email and phone.
func (d *Db) ListUsers(f db.UserFilter) ([]db.User, int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, 0, err
	}
	defer d.pool.Put(conn)

	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.Search != "" {
		where += ` AND (first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	var total int
	err = sqlitex.Execute(conn, `SELECT COUNT(*) FROM users`+where,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				total = int(stmt.ColumnInt64(0))
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	order := ` ORDER BY id ASC`
	if f.SortDesc {
		order = ` ORDER BY id DESC`
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + order
	if !f.All {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	users := []db.User{}
	err = sqlitex.Execute(conn, query,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				u, err := newUserFromStmt(stmt)
				if err != nil {
					return err
				}
				users = append(users, *u)
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser writes the mutable profile fields of a user row. The password
// hash is only replaced when the given user carries one.
func (d *Db) UpdateUser(u db.User) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET email = ?,
			first_name = ?,
			last_name = ?,
			phone = ?,
			role = ?,
			password = IIF(? = '', password, ?),
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{
				u.Email,
				u.FirstName,
				u.LastName,
				u.Phone,
				u.Role,
				u.Password, u.Password,
				u.ID,
			},
		})
	if err != nil {
		return mapConstraintErr(err)
	}
	if conn.Changes() == 0 {
		return db.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user row.
func (d *Db) DeleteUser(id int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM users WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
