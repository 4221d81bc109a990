package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func commentFromStmt(stmt *sqlite.Stmt) db.Comment {
	return db.Comment{
		ID:           stmt.GetInt64("id"),
		RestaurantID: stmt.GetInt64("restaurant_id"),
		UserID:       stmt.GetInt64("user_id"),
		Content:      stmt.GetText("content"),
		Rate:         int(stmt.GetInt64("rate")),
	}
}

// ListComments returns one page of all comments plus the unpaginated total,
// for the admin view.
func (d *Db) ListComments(f db.ListFilter) ([]db.Comment, int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, 0, err
	}
	defer d.pool.Put(conn)

	where := ``
	args := []interface{}{}
	if f.Search != "" {
		where = ` WHERE content LIKE ?`
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	err = sqlitex.Execute(conn, `SELECT COUNT(*) FROM comments`+where,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				total = int(stmt.ColumnInt64(0))
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `SELECT id, restaurant_id, user_id, content, rate FROM comments` + where + ` ORDER BY id DESC`
	if !f.All {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	comments := []db.Comment{}
	err = sqlitex.Execute(conn, query,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				comments = append(comments, commentFromStmt(stmt))
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// ListCommentsByRestaurant returns all comments of one restaurant joined
// with the author names, newest first.
func (d *Db) ListCommentsByRestaurant(restaurantID int64) ([]db.CommentDetail, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	comments := []db.CommentDetail{}
	err = sqlitex.Execute(conn,
		`SELECT c.id, c.restaurant_id, c.user_id, c.content, c.rate,
			u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.restaurant_id = ?
		ORDER BY c.id DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				comments = append(comments, db.CommentDetail{
					Comment:   commentFromStmt(stmt),
					FirstName: stmt.GetText("first_name"),
					LastName:  stmt.GetText("last_name"),
				})
				return nil
			},
			Args: []interface{}{restaurantID},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant comments: %w", err)
	}
	return comments, nil
}

// GetComment retrieves one comment row. Returns nil without error when the
// id is unknown.
func (d *Db) GetComment(id int64) (*db.Comment, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var comment *db.Comment
	err = sqlitex.Execute(conn,
		`SELECT id, restaurant_id, user_id, content, rate FROM comments WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				c := commentFromStmt(stmt)
				comment = &c
				return nil
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateComment inserts a comment row.
func (d *Db) CreateComment(c db.Comment) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO comments (restaurant_id, user_id, content, rate) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{c.RestaurantID, c.UserID, c.Content, c.Rate},
		})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// UpdateComment rewrites the content and rate of a comment row.
func (d *Db) UpdateComment(c db.Comment) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE comments SET content = ?, rate = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{c.Content, c.Rate, c.ID},
		})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// DeleteComment removes a comment row.
func (d *Db) DeleteComment(id int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM comments WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
