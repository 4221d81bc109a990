package mock

import (
	"github.com/caasmo/tablebook/db"
)

// Compile-time check to ensure Db implements the DbApp interface
var _ db.DbApp = (*Db)(nil)

// Db implements db.DbApp for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	// --- Mock DbAuth Methods ---
	GetUserByEmailFunc      func(email string) (*db.User, error)
	GetUserByIDFunc         func(id int64) (*db.User, error)
	GetUserByFacebookIDFunc func(facebookID string) (*db.User, error)
	CreateUserFunc          func(user db.User) (*db.User, error)
	MarkVerifiedFunc        func(userID int64) error
	UpdatePasswordFunc      func(userID int64, passwordHash string) error

	// --- Mock DbTokens Methods ---
	InsertActionTokenFunc  func(t db.ActionToken) error
	GetActionTokenFunc     func(email, token, purpose string) (*db.ActionToken, error)
	DeleteActionTokenFunc  func(email, token string) error
	DeleteActionTokensFunc func(email, purpose string) error

	// --- Mock DbQueue Methods ---
	InsertJobFunc     func(job db.Job) error
	ClaimFunc         func(limit int) ([]*db.Job, error)
	MarkCompletedFunc func(jobID int64) error
	MarkFailedFunc    func(jobID int64, errMsg string) error

	// --- Mock DbStore Methods ---
	ListRestaurantsFunc          func(f db.RestaurantFilter) ([]db.RestaurantListing, int, error)
	ListRestaurantsByManagerFunc func(f db.RestaurantFilter, managerID int64) ([]db.RestaurantListing, int, error)
	GetRestaurantFunc            func(id int64) (*db.Restaurant, error)
	GetRestaurantRatingFunc      func(id int64) (*db.Rating, error)
	GetRestaurantContactFunc     func(id int64) (*db.RestaurantContact, error)
	CreateRestaurantFunc         func(r db.Restaurant) error
	UpdateRestaurantFunc         func(r db.Restaurant) error
	DeleteRestaurantFunc         func(id int64) error

	ListBookingsFunc  func(f db.BookingFilter) ([]db.BookingDetail, int, error)
	GetBookingFunc    func(id int64) (*db.Booking, error)
	CreateBookingFunc func(b db.Booking) (int64, error)
	UpdateBookingFunc func(b db.Booking) error
	DeleteBookingFunc func(id int64) error
	HasBookingFunc    func(userID, restaurantID int64) (bool, error)

	ListCommentsFunc             func(f db.ListFilter) ([]db.Comment, int, error)
	ListCommentsByRestaurantFunc func(restaurantID int64) ([]db.CommentDetail, error)
	GetCommentFunc               func(id int64) (*db.Comment, error)
	CreateCommentFunc            func(c db.Comment) error
	UpdateCommentFunc            func(c db.Comment) error
	DeleteCommentFunc            func(id int64) error

	ListSuggestionsByManagerFunc func(f db.ListFilter, managerID int64) ([]db.SuggestionDetail, int, error)
	GetSuggestionFunc            func(id int64) (*db.Suggestion, error)
	CreateSuggestionFunc         func(s db.Suggestion) error
	UpdateSuggestionFunc         func(s db.Suggestion) error
	DeleteSuggestionFunc         func(id int64) error

	ListUsersFunc  func(f db.UserFilter) ([]db.User, int, error)
	UpdateUserFunc func(u db.User) error
	DeleteUserFunc func(id int64) error
}

// --- Implement DbAuth ---

func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, nil // Default: Not found
}

func (m *Db) GetUserByID(id int64) (*db.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(id)
	}
	return nil, nil // Default: Not found
}

func (m *Db) GetUserByFacebookID(facebookID string) (*db.User, error) {
	if m.GetUserByFacebookIDFunc != nil {
		return m.GetUserByFacebookIDFunc(facebookID)
	}
	return nil, nil // Default: Not found
}

func (m *Db) CreateUser(user db.User) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(user)
	}
	// Default: Return the user passed in, assuming success
	user.ID = 1
	return &user, nil
}

func (m *Db) MarkVerified(userID int64) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(userID)
	}
	return nil // Default: Success
}

func (m *Db) UpdatePassword(userID int64, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(userID, passwordHash)
	}
	return nil // Default: Success
}

// --- Implement DbTokens ---

func (m *Db) InsertActionToken(t db.ActionToken) error {
	if m.InsertActionTokenFunc != nil {
		return m.InsertActionTokenFunc(t)
	}
	return nil // Default: Success
}

func (m *Db) GetActionToken(email, token, purpose string) (*db.ActionToken, error) {
	if m.GetActionTokenFunc != nil {
		return m.GetActionTokenFunc(email, token, purpose)
	}
	return nil, nil // Default: Not found
}

func (m *Db) DeleteActionToken(email, token string) error {
	if m.DeleteActionTokenFunc != nil {
		return m.DeleteActionTokenFunc(email, token)
	}
	return nil // Default: Success
}

func (m *Db) DeleteActionTokens(email, purpose string) error {
	if m.DeleteActionTokensFunc != nil {
		return m.DeleteActionTokensFunc(email, purpose)
	}
	return nil // Default: Success
}

// --- Implement DbQueue ---

func (m *Db) InsertJob(job db.Job) error {
	if m.InsertJobFunc != nil {
		return m.InsertJobFunc(job)
	}
	return nil // Default: Success
}

func (m *Db) Claim(limit int) ([]*db.Job, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(limit)
	}
	return []*db.Job{}, nil // Default: No jobs claimed
}

func (m *Db) MarkCompleted(jobID int64) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(jobID)
	}
	return nil // Default: Success
}

func (m *Db) MarkFailed(jobID int64, errMsg string) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(jobID, errMsg)
	}
	return nil // Default: Success
}

// --- Implement DbStore ---

func (m *Db) ListRestaurants(f db.RestaurantFilter) ([]db.RestaurantListing, int, error) {
	if m.ListRestaurantsFunc != nil {
		return m.ListRestaurantsFunc(f)
	}
	return []db.RestaurantListing{}, 0, nil
}

func (m *Db) ListRestaurantsByManager(f db.RestaurantFilter, managerID int64) ([]db.RestaurantListing, int, error) {
	if m.ListRestaurantsByManagerFunc != nil {
		return m.ListRestaurantsByManagerFunc(f, managerID)
	}
	return []db.RestaurantListing{}, 0, nil
}

func (m *Db) GetRestaurant(id int64) (*db.Restaurant, error) {
	if m.GetRestaurantFunc != nil {
		return m.GetRestaurantFunc(id)
	}
	return nil, nil
}

func (m *Db) GetRestaurantRating(id int64) (*db.Rating, error) {
	if m.GetRestaurantRatingFunc != nil {
		return m.GetRestaurantRatingFunc(id)
	}
	return &db.Rating{}, nil
}

func (m *Db) GetRestaurantContact(id int64) (*db.RestaurantContact, error) {
	if m.GetRestaurantContactFunc != nil {
		return m.GetRestaurantContactFunc(id)
	}
	return nil, nil
}

func (m *Db) CreateRestaurant(r db.Restaurant) error {
	if m.CreateRestaurantFunc != nil {
		return m.CreateRestaurantFunc(r)
	}
	return nil
}

func (m *Db) UpdateRestaurant(r db.Restaurant) error {
	if m.UpdateRestaurantFunc != nil {
		return m.UpdateRestaurantFunc(r)
	}
	return nil
}

func (m *Db) DeleteRestaurant(id int64) error {
	if m.DeleteRestaurantFunc != nil {
		return m.DeleteRestaurantFunc(id)
	}
	return nil
}

func (m *Db) ListBookings(f db.BookingFilter) ([]db.BookingDetail, int, error) {
	if m.ListBookingsFunc != nil {
		return m.ListBookingsFunc(f)
	}
	return []db.BookingDetail{}, 0, nil
}

func (m *Db) GetBooking(id int64) (*db.Booking, error) {
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(id)
	}
	return nil, nil
}

func (m *Db) CreateBooking(b db.Booking) (int64, error) {
	if m.CreateBookingFunc != nil {
		return m.CreateBookingFunc(b)
	}
	return 1, nil
}

func (m *Db) UpdateBooking(b db.Booking) error {
	if m.UpdateBookingFunc != nil {
		return m.UpdateBookingFunc(b)
	}
	return nil
}

func (m *Db) DeleteBooking(id int64) error {
	if m.DeleteBookingFunc != nil {
		return m.DeleteBookingFunc(id)
	}
	return nil
}

func (m *Db) HasBooking(userID, restaurantID int64) (bool, error) {
	if m.HasBookingFunc != nil {
		return m.HasBookingFunc(userID, restaurantID)
	}
	return false, nil
}

func (m *Db) ListComments(f db.ListFilter) ([]db.Comment, int, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(f)
	}
	return []db.Comment{}, 0, nil
}

func (m *Db) ListCommentsByRestaurant(restaurantID int64) ([]db.CommentDetail, error) {
	if m.ListCommentsByRestaurantFunc != nil {
		return m.ListCommentsByRestaurantFunc(restaurantID)
	}
	return []db.CommentDetail{}, nil
}

func (m *Db) GetComment(id int64) (*db.Comment, error) {
	if m.GetCommentFunc != nil {
		return m.GetCommentFunc(id)
	}
	return nil, nil
}

func (m *Db) CreateComment(c db.Comment) error {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(c)
	}
	return nil
}

func (m *Db) UpdateComment(c db.Comment) error {
	if m.UpdateCommentFunc != nil {
		return m.UpdateCommentFunc(c)
	}
	return nil
}

func (m *Db) DeleteComment(id int64) error {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(id)
	}
	return nil
}

func (m *Db) ListSuggestionsByManager(f db.ListFilter, managerID int64) ([]db.SuggestionDetail, int, error) {
	if m.ListSuggestionsByManagerFunc != nil {
		return m.ListSuggestionsByManagerFunc(f, managerID)
	}
	return []db.SuggestionDetail{}, 0, nil
}

func (m *Db) GetSuggestion(id int64) (*db.Suggestion, error) {
	if m.GetSuggestionFunc != nil {
		return m.GetSuggestionFunc(id)
	}
	return nil, nil
}

func (m *Db) CreateSuggestion(s db.Suggestion) error {
	if m.CreateSuggestionFunc != nil {
		return m.CreateSuggestionFunc(s)
	}
	return nil
}

func (m *Db) UpdateSuggestion(s db.Suggestion) error {
	if m.UpdateSuggestionFunc != nil {
		return m.UpdateSuggestionFunc(s)
	}
	return nil
}

func (m *Db) DeleteSuggestion(id int64) error {
	if m.DeleteSuggestionFunc != nil {
		return m.DeleteSuggestionFunc(id)
	}
	return nil
}

func (m *Db) ListUsers(f db.UserFilter) ([]db.User, int, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(f)
	}
	return []db.User{}, 0, nil
}

func (m *Db) UpdateUser(u db.User) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(u)
	}
	return nil
}

func (m *Db) DeleteUser(id int64) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(id)
	}
	return nil
}
