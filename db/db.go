package db

import "errors"

var (
	// ErrConstraintUnique is returned when an insert violates a UNIQUE
	// constraint, e.g. registering an email that already has a user row.
	ErrConstraintUnique = errors.New("unique constraint violation")

	// ErrUserNotFound is returned by lookups that require an existing user.
	ErrUserNotFound = errors.New("user not found")
)

// DbAuth covers the user rows of the credential store.
// Lookups return (nil, nil) when no matching row exists; an error is only
// returned for store failures.
type DbAuth interface {
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id int64) (*User, error)
	GetUserByFacebookID(facebookID string) (*User, error)
	CreateUser(user User) (*User, error)
	MarkVerified(userID int64) error
	UpdatePassword(userID int64, passwordHash string) error
}

// DbTokens covers the ephemeral action-token rows (register / forgot).
// Redemption is destructive: callers delete the row immediately after use.
type DbTokens interface {
	InsertActionToken(t ActionToken) error
	GetActionToken(email, token, purpose string) (*ActionToken, error)
	DeleteActionToken(email, token string) error
	DeleteActionTokens(email, purpose string) error
}

// DbQueue covers the background job queue.
type DbQueue interface {
	InsertJob(job Job) error
	Claim(limit int) ([]*Job, error)
	MarkCompleted(jobID int64) error
	MarkFailed(jobID int64, errMsg string) error
}

// DbStore covers the domain tables: restaurants, bookings, comments,
// suggestions and the admin view over users. List methods return the page
// and the unpaginated total count.
type DbStore interface {
	ListRestaurants(f RestaurantFilter) ([]RestaurantListing, int, error)
	ListRestaurantsByManager(f RestaurantFilter, managerID int64) ([]RestaurantListing, int, error)
	GetRestaurant(id int64) (*Restaurant, error)
	GetRestaurantRating(id int64) (*Rating, error)
	GetRestaurantContact(id int64) (*RestaurantContact, error)
	CreateRestaurant(r Restaurant) error
	UpdateRestaurant(r Restaurant) error
	DeleteRestaurant(id int64) error

	ListBookings(f BookingFilter) ([]BookingDetail, int, error)
	GetBooking(id int64) (*Booking, error)
	CreateBooking(b Booking) (int64, error)
	UpdateBooking(b Booking) error
	DeleteBooking(id int64) error
	HasBooking(userID, restaurantID int64) (bool, error)

	ListComments(f ListFilter) ([]Comment, int, error)
	ListCommentsByRestaurant(restaurantID int64) ([]CommentDetail, error)
	GetComment(id int64) (*Comment, error)
	CreateComment(c Comment) error
	UpdateComment(c Comment) error
	DeleteComment(id int64) error

	ListSuggestionsByManager(f ListFilter, managerID int64) ([]SuggestionDetail, int, error)
	GetSuggestion(id int64) (*Suggestion, error)
	CreateSuggestion(s Suggestion) error
	UpdateSuggestion(s Suggestion) error
	DeleteSuggestion(id int64) error

	ListUsers(f UserFilter) ([]User, int, error)
	UpdateUser(u User) error
	DeleteUser(id int64) error
}

// DbApp combines the roles the application needs. The concrete
// implementation (*zombiezen.Db) must satisfy this interface.
type DbApp interface {
	DbAuth
	DbTokens
	DbQueue
	DbStore
}
