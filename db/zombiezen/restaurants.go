package zombiezen

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const restaurantColumns = `r.id, r.name, r.address, r.manager, r.phone, r.email, r.description, r.menu,
	r.website, r.working_time, r.gallery, r.latitude, r.longitude, r.rules, r.tags, r.facilities,
	r.empty_table, r.price, r.user_id, r.province_id`

// ratingJoin aggregates comment ratings per restaurant for the listings.
const ratingJoin = ` LEFT JOIN (
		SELECT restaurant_id, AVG(rate) AS avg_rate, COUNT(*) AS rate_count
		FROM comments GROUP BY restaurant_id
	) rt ON rt.restaurant_id = r.id`

func restaurantFromStmt(stmt *sqlite.Stmt) db.Restaurant {
	return db.Restaurant{
		ID:          stmt.GetInt64("id"),
		Name:        stmt.GetText("name"),
		Address:     stmt.GetText("address"),
		Manager:     stmt.GetText("manager"),
		Phone:       stmt.GetText("phone"),
		Email:       stmt.GetText("email"),
		Description: stmt.GetText("description"),
		Menu:        stmt.GetText("menu"),
		Website:     stmt.GetText("website"),
		WorkingTime: stmt.GetText("working_time"),
		Gallery:     stmt.GetText("gallery"),
		Latitude:    stmt.GetFloat("latitude"),
		Longitude:   stmt.GetFloat("longitude"),
		Rules:       stmt.GetText("rules"),
		Tags:        stmt.GetText("tags"),
		Facilities:  stmt.GetText("facilities"),
		EmptyTable:  stmt.GetText("empty_table"),
		Price:       stmt.GetText("price"),
		UserID:      stmt.GetInt64("user_id"),
		ProvinceID:  stmt.GetInt64("province_id"),
	}
}

func restaurantFilterClause(f db.RestaurantFilter) (string, []interface{}) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.Search != "" {
		where += ` AND (r.name LIKE ? OR r.address LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	if f.ProvinceID != 0 {
		where += ` AND r.province_id = ?`
		args = append(args, f.ProvinceID)
	}
	if f.WorkingTime != "" {
		where += ` AND r.working_time LIKE ?`
		args = append(args, "%"+f.WorkingTime+"%")
	}
	return where, args
}

func (d *Db) listRestaurants(where string, args []interface{}, f db.ListFilter) ([]db.RestaurantListing, int, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, 0, err
	}
	defer d.pool.Put(conn)

	var total int
	err = sqlitex.Execute(conn, `SELECT COUNT(*) FROM restaurants r`+where,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				total = int(stmt.ColumnInt64(0))
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	query := `SELECT ` + restaurantColumns + `,
		COALESCE(rt.avg_rate, 0) AS avg_rate,
		COALESCE(rt.rate_count, 0) AS rate_count
		FROM restaurants r` + ratingJoin + where + ` ORDER BY r.id ASC`
	if !f.All {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	listings := []db.RestaurantListing{}
	err = sqlitex.Execute(conn, query,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				listings = append(listings, db.RestaurantListing{
					Restaurant: restaurantFromStmt(stmt),
					Rating: db.Rating{
						Average: stmt.GetFloat("avg_rate"),
						Count:   stmt.GetInt64("rate_count"),
					},
				})
				return nil
			},
			Args: args,
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return listings, total, nil
}

// ListRestaurants returns one page of the public restaurant listing with
// rating aggregates, plus the unpaginated total.
func (d *Db) ListRestaurants(f db.RestaurantFilter) ([]db.RestaurantListing, int, error) {
	where, args := restaurantFilterClause(f)
	return d.listRestaurants(where, args, f.ListFilter)
}

// ListRestaurantsByManager scopes the listing to restaurants managed by one
// user.
func (d *Db) ListRestaurantsByManager(f db.RestaurantFilter, managerID int64) ([]db.RestaurantListing, int, error) {
	where, args := restaurantFilterClause(f)
	where += ` AND r.user_id = ?`
	args = append(args, managerID)
	return d.listRestaurants(where, args, f.ListFilter)
}

// GetRestaurant retrieves one restaurant row. Returns nil without error when
// the id is unknown.
func (d *Db) GetRestaurant(id int64) (*db.Restaurant, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var restaurant *db.Restaurant
	err = sqlitex.Execute(conn,
		`SELECT `+restaurantColumns+` FROM restaurants r WHERE r.id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				r := restaurantFromStmt(stmt)
				restaurant = &r
				return nil
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

// GetRestaurantRating computes the rating aggregates for one restaurant.
func (d *Db) GetRestaurantRating(id int64) (*db.Rating, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	rating := &db.Rating{}
	err = sqlitex.Execute(conn,
		`SELECT COALESCE(AVG(rate), 0) AS avg_rate, COUNT(*) AS rate_count
		FROM comments WHERE restaurant_id = ?`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rating.Average = stmt.GetFloat("avg_rate")
				rating.Count = stmt.GetInt64("rate_count")
				return nil
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant rating: %w", err)
	}
	return rating, nil
}

// GetRestaurantContact loads what the booking notifications need: the
// restaurant's own address and its manager's given name.
func (d *Db) GetRestaurantContact(id int64) (*db.RestaurantContact, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var contact *db.RestaurantContact
	err = sqlitex.Execute(conn,
		`SELECT r.name, r.email, COALESCE(u.first_name, '') AS manager_first_name
		FROM restaurants r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				contact = &db.RestaurantContact{
					Name:             stmt.GetText("name"),
					Email:            stmt.GetText("email"),
					ManagerFirstName: stmt.GetText("manager_first_name"),
				}
				return nil
			},
			Args: []interface{}{id},
		})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// CreateRestaurant inserts a restaurant row.
func (d *Db) CreateRestaurant(r db.Restaurant) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO restaurants (name, address, manager, phone, email, description, menu, website,
			working_time, gallery, latitude, longitude, rules, tags, facilities, empty_table, price,
			user_id, province_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{
				r.Name, r.Address, r.Manager, r.Phone, r.Email, r.Description, r.Menu, r.Website,
				r.WorkingTime, r.Gallery, r.Latitude, r.Longitude, r.Rules, r.Tags, r.Facilities,
				r.EmptyTable, r.Price, r.UserID, r.ProvinceID,
			},
		})
	if err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

// UpdateRestaurant rewrites a restaurant row.
func (d *Db) UpdateRestaurant(r db.Restaurant) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE restaurants
		SET name = ?, address = ?, manager = ?, phone = ?, email = ?, description = ?, menu = ?,
			website = ?, working_time = ?, gallery = ?, latitude = ?, longitude = ?, rules = ?,
			tags = ?, facilities = ?, empty_table = ?, price = ?, user_id = ?, province_id = ?
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{
				r.Name, r.Address, r.Manager, r.Phone, r.Email, r.Description, r.Menu, r.Website,
				r.WorkingTime, r.Gallery, r.Latitude, r.Longitude, r.Rules, r.Tags, r.Facilities,
				r.EmptyTable, r.Price, r.UserID, r.ProvinceID,
				r.ID,
			},
		})
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	return nil
}

// DeleteRestaurant removes a restaurant row. Dependent bookings, comments
// and suggestions cascade.
func (d *Db) DeleteRestaurant(id int64) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM restaurants WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}
