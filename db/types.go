package db

import (
	"encoding/json"
	"time"
)

// User roles. Every user row carries exactly one.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Action token purposes.
const (
	PurposeRegister = "register"
	PurposeForgot   = "forgot"
)

// User represents a user row.
// Timestamps use RFC3339 format in UTC timezone, e.g. "2024-03-07T15:04:05Z".
// Email may be empty for accounts created through Facebook, which does not
// always release an address; such rows are keyed by FacebookID instead.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
	// Password holds the bcrypt hash. Never serialized.
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Verified   bool      `json:"verified"`
	FacebookID string    `json:"facebookId,omitempty"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// ActionToken is a single-use opaque token proving control of an email
// address for one purpose. The row's existence is its validity: redemption
// deletes it, which makes replay impossible.
type ActionToken struct {
	Email   string
	Token   string
	Purpose string
	Created time.Time
}

// Restaurant represents a restaurant row.
type Restaurant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Manager     string  `json:"manager"`
	Phone       string  `json:"phoneNumber"`
	Email       string  `json:"email"`
	Description string  `json:"description"`
	Menu        string  `json:"menu"`
	Website     string  `json:"website"`
	WorkingTime string  `json:"workingTime"`
	Gallery     string  `json:"gallery"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Rules       string  `json:"rules"`
	Tags        string  `json:"tags"`
	Facilities  string  `json:"facilities"`
	EmptyTable  string  `json:"emptyTable"`
	Price       string  `json:"price"`
	// UserID is the managing user's id.
	UserID     int64 `json:"userId"`
	ProvinceID int64 `json:"provinceId"`
}

// Rating aggregates the comment ratings of one restaurant.
type Rating struct {
	Average float64 `json:"rateTotal"`
	Count   int64   `json:"rateCount"`
}

// RestaurantListing is a restaurant row joined with its rating aggregates,
// as returned by the list endpoints.
type RestaurantListing struct {
	Restaurant
	Rating
}

// RestaurantContact carries what the booking notification emails need:
// the restaurant's own address plus its manager's given name.
type RestaurantContact struct {
	Name             string
	Email            string
	ManagerFirstName string
}

// Booking represents a table booking row.
type Booking struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	UserID       int64     `json:"userId"`
	Date         time.Time `json:"date"`
	People       int       `json:"people"`
	Note         string    `json:"note"`
}

// BookingDetail is a booking joined with restaurant and user names.
type BookingDetail struct {
	Booking
	RestaurantName string `json:"restaurantName"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

// Comment represents a review row with a 1-5 rating.
type Comment struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	UserID       int64  `json:"userId"`
	Content      string `json:"content"`
	Rate         int    `json:"rate"`
}

// CommentDetail is a comment joined with its author's names.
type CommentDetail struct {
	Comment
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Suggestion represents an improvement-suggestion row addressed to a
// restaurant.
type Suggestion struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	UserID       int64  `json:"userId"`
	Comment      string `json:"comment"`
}

// SuggestionDetail is a suggestion joined with submitter and restaurant.
type SuggestionDetail struct {
	Suggestion
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phoneNumber"`
	RestaurantName string `json:"restaurantName"`
}

// ListFilter carries the shared pagination and search parameters of the
// list endpoints. Limit <= 0 combined with All=false means the default page
// size; All=true disables pagination.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
	All    bool
}

// RestaurantFilter narrows the public restaurant listing.
type RestaurantFilter struct {
	ListFilter
	ProvinceID  int64
	WorkingTime string
}

// BookingFilter scopes the booking listing to a restaurant or a user.
type BookingFilter struct {
	ListFilter
	RestaurantID int64
	UserID       int64
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	ListFilter
	SortDesc bool
}

// Job represents a job in the processing queue.
type Job struct {
	ID           int64           `json:"id"`
	JobType      string          `json:"job_type"`
	Payload      json.RawMessage `json:"payload"`
	Status       string          `json:"status"`
	Attempts     int             `json:"attempts"`
	MaxAttempts  int             `json:"max_attempts"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	LockedAt     time.Time       `json:"locked_at,omitempty"`
	CompletedAt  time.Time       `json:"completed_at,omitempty"`
	LastError    string          `json:"last_error,omitempty"`
}
