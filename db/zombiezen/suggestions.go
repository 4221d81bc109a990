package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ListSuggestionsByManager returns one page of the suggestions addressed to
// restaurants managed by the given user, joined with submitter and
// restaurant, plus the unpaginated total.
func (d *Db) ListSuggestionsByManager(f db.ListFilter, managerID int64) ([]db.SuggestionDetail, int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, 0, err
	}
	defer d.pool.Put(conn)

	// Anonymous submissions carry user_id 0, so the submitter join must
	// not drop rows without a matching user.
	join := ` FROM suggestions s
		JOIN restaurants r ON r.id = s.restaurant_id
		LEFT JOIN users u ON u.id = s.user_id`
	where := ` WHERE r.user_id = ?`
	args := []interface{}{managerID}
	if f.Search != "" {
		where += ` AND (s.comment LIKE ? OR r.name LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	err = sqlitex.Execute(conn, `SELECT COUNT(*)`+join+where,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				total = int(stmt.ColumnInt64(0))
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count suggestions: %w", err)
	}

	query := `SELECT s.id, s.restaurant_id, s.user_id, s.comment,
		u.first_name, u.last_name, u.email, u.phone,
		r.name AS restaurant_name` + join + where + ` ORDER BY s.id DESC`
	if !f.All {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	suggestions := []db.SuggestionDetail{}
	err = sqlitex.Execute(conn, query,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				suggestions = append(suggestions, db.SuggestionDetail{
					Suggestion: db.Suggestion{
						ID:           stmt.GetInt64("id"),
						RestaurantID: stmt.GetInt64("restaurant_id"),
						UserID:       stmt.GetInt64("user_id"),
						Comment:      stmt.GetText("comment"),
					},
					FirstName:      stmt.GetText("first_name"),
					LastName:       stmt.GetText("last_name"),
					Email:          stmt.GetText("email"),
					Phone:          stmt.GetText("phone"),
					RestaurantName: stmt.GetText("restaurant_name"),
				})
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, total, nil
}

// GetSuggestion retrieves one suggestion row. Returns nil without error when
// the id is unknown.
func (d *Db) GetSuggestion(id int64) (*db.Suggestion, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var suggestion *db.Suggestion
	err = sqlitex.Execute(conn,
		`SELECT id, restaurant_id, user_id, comment FROM suggestions WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				suggestion = &db.Suggestion{
					ID:           stmt.GetInt64("id"),
					RestaurantID: stmt.GetInt64("restaurant_id"),
					UserID:       stmt.GetInt64("user_id"),
					Comment:      stmt.GetText("comment"),
				}
				return nil
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}
	return suggestion, nil
}

// CreateSuggestion inserts a suggestion row.
func (d *Db) CreateSuggestion(s db.Suggestion) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	// Anonymous submissions are stored with a NULL user_id.
	var userID interface{}
	if s.UserID != 0 {
		userID = s.UserID
	}
	err = sqlitex.Execute(conn,
		`INSERT INTO suggestions (restaurant_id, user_id, comment) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{s.RestaurantID, userID, s.Comment},
		})
	if err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}
	return nil
}

// UpdateSuggestion rewrites the comment of a suggestion row.
func (d *Db) UpdateSuggestion(s db.Suggestion) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE suggestions SET comment = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{s.Comment, s.ID},
		})
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	return nil
}

// DeleteSuggestion removes a suggestion row.
func (d *Db) DeleteSuggestion(id int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM suggestions WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}
	return nil
}
