package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const bookingDetailColumns = `b.id, b.restaurant_id, b.user_id, b.date, b.people, b.note,
	r.name AS restaurant_name, u.first_name, u.last_name`

const bookingDetailJoin = ` FROM bookings b
	JOIN restaurants r ON r.id = b.restaurant_id
	JOIN users u ON u.id = b.user_id`

func bookingDetailFromStmt(stmt *sqlite.Stmt) (*db.BookingDetail, error) {
	date, err := db.TimeParse(stmt.GetText("date"))
	if err != nil {
		return nil, fmt.Errorf("error parsing booking date: %w", err)
	}
	return &db.BookingDetail{
		Booking: db.Booking{
			ID:           stmt.GetInt64("id"),
			RestaurantID: stmt.GetInt64("restaurant_id"),
			UserID:       stmt.GetInt64("user_id"),
			Date:         date,
			People:       int(stmt.GetInt64("people")),
			Note:         stmt.GetText("note"),
		},
		RestaurantName: stmt.GetText("restaurant_name"),
		FirstName:      stmt.GetText("first_name"),
		LastName:       stmt.GetText("last_name"),
	}, nil
}

// ListBookings returns one page of bookings joined with restaurant and user
// names, plus the unpaginated total. The filter scopes to a restaurant, a
// user, or both.
func (d *Db) ListBookings(f db.BookingFilter) ([]db.BookingDetail, int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, 0, err
	}
	defer d.pool.Put(conn)

	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.RestaurantID != 0 {
		where += ` AND b.restaurant_id = ?`
		args = append(args, f.RestaurantID)
	}
	if f.UserID != 0 {
		where += ` AND b.user_id = ?`
		args = append(args, f.UserID)
	}
	if f.Search != "" {
		where += ` AND (r.name LIKE ? OR u.first_name LIKE ? OR u.last_name LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	err = sqlitex.Execute(conn, `SELECT COUNT(*)`+bookingDetailJoin+where,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				total = int(stmt.ColumnInt64(0))
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := `SELECT ` + bookingDetailColumns + bookingDetailJoin + where + ` ORDER BY b.id DESC`
	if !f.All {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	bookings := []db.BookingDetail{}
	err = sqlitex.Execute(conn, query,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				b, err := bookingDetailFromStmt(stmt)
				if err != nil {
					return err
				}
				bookings = append(bookings, *b)
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

// GetBooking retrieves one booking row. Returns nil without error when the
// id is unknown.
func (d *Db) GetBooking(id int64) (*db.Booking, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var booking *db.Booking
	err = sqlitex.Execute(conn,
		`SELECT id, restaurant_id, user_id, date, people, note
		FROM bookings WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				date, err := db.TimeParse(stmt.GetText("date"))
				if err != nil {
					return fmt.Errorf("error parsing booking date: %w", err)
				}
				booking = &db.Booking{
					ID:           stmt.GetInt64("id"),
					RestaurantID: stmt.GetInt64("restaurant_id"),
					UserID:       stmt.GetInt64("user_id"),
					Date:         date,
					People:       int(stmt.GetInt64("people")),
					Note:         stmt.GetText("note"),
				}
				return nil
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CreateBooking inserts a booking row and returns its id.
func (d *Db) CreateBooking(b db.Booking) (int64, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer d.pool.Put(conn)

	var id int64
	err = sqlitex.Execute(conn,
		`INSERT INTO bookings (restaurant_id, user_id, date, people, note)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id = stmt.ColumnInt64(0)
				return nil
			},
			Args: []interface{}{
				b.RestaurantID,
				b.UserID,
				db.TimeString(b.Date),
				b.People,
				b.Note,
			},
		})
	if err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}
	return id, nil
}

// UpdateBooking rewrites the mutable fields of a booking row.
func (d *Db) UpdateBooking(b db.Booking) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE bookings SET date = ?, people = ?, note = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{db.TimeString(b.Date), b.People, b.Note, b.ID},
		})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking row.
func (d *Db) DeleteBooking(id int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM bookings WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// HasBooking reports whether the user has ever booked a table at the
// restaurant. Commenting requires it.
func (d *Db) HasBooking(userID, restaurantID int64) (bool, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return false, err
	}
	defer d.pool.Put(conn)

	var found bool
	err = sqlitex.Execute(conn,
		`SELECT 1 FROM bookings WHERE user_id = ? AND restaurant_id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				return nil
			},
			Args: []interface{}{userID, restaurantID},
		})
	if err != nil {
		return false, fmt.Errorf("failed to check booking: %w", err)
	}
	return found, nil
}
