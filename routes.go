package tablebook

import (
	"net/http"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/core"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/router"
)

// route wires the full endpoint table. Authorization lives here, not in the
// handlers: each protected route is paired with its role allow-list.
func route(cfg *config.Config, ap *core.App) {
	handle := func(method, path string, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
		ap.Router().Handle(method, path, router.NewChain(h).WithMiddleware(mws...).Handler())
	}

	authed := ap.RequireAuth
	staff := ap.RequireRoles(db.RoleAdmin, db.RoleManager)
	admins := ap.RequireRoles(db.RoleAdmin)
	managers := ap.RequireRoles(db.RoleManager)

	// --- credential and token lifecycle ---
	handle(http.MethodPost, "/auth/register", ap.RegisterHandler)
	handle(http.MethodPost, "/auth/verifiedUser", ap.VerifyUserHandler)
	handle(http.MethodPost, "/auth/login", ap.LoginHandler)
	handle(http.MethodPost, "/auth/forgotPassword", ap.ForgotPasswordHandler)
	handle(http.MethodPost, "/auth/resetPassword", ap.ResetPasswordHandler)
	handle(http.MethodGet, "/auth/getMe", ap.MeHandler, authed)
	handle(http.MethodGet, "/auth/withGoogle", ap.OAuth2EntryHandler(config.ProviderGoogle))
	handle(http.MethodGet, "/auth/withGoogle/callback", ap.OAuth2CallbackHandler(config.ProviderGoogle))
	handle(http.MethodGet, "/auth/withFacebook", ap.OAuth2EntryHandler(config.ProviderFacebook))
	handle(http.MethodGet, "/auth/withFacebook/callback", ap.OAuth2CallbackHandler(config.ProviderFacebook))

	// --- restaurants ---
	handle(http.MethodGet, "/restaurant", ap.ListRestaurantsHandler)
	handle(http.MethodGet, "/restaurant/:id", ap.GetRestaurantHandler)
	handle(http.MethodPost, "/restaurant", ap.CreateRestaurantHandler, staff)
	handle(http.MethodPut, "/restaurant/:id", ap.UpdateRestaurantHandler, staff)
	handle(http.MethodDelete, "/restaurant/:id", ap.DeleteRestaurantHandler, staff)

	// --- bookings ---
	handle(http.MethodGet, "/booking", ap.ListBookingsHandler, ap.RequireRoles(db.RoleUser, db.RoleManager))
	handle(http.MethodGet, "/booking/:id", ap.GetBookingHandler, authed)
	handle(http.MethodPost, "/booking", ap.CreateBookingHandler, authed)
	handle(http.MethodPut, "/booking/:id", ap.UpdateBookingHandler, authed)
	handle(http.MethodDelete, "/booking/:id", ap.DeleteBookingHandler, staff)

	// --- comments ---
	handle(http.MethodGet, "/comment", ap.ListCommentsHandler)
	handle(http.MethodGet, "/comment/:id", ap.GetCommentHandler)
	handle(http.MethodPost, "/comment", ap.CreateCommentHandler, authed)
	handle(http.MethodPut, "/comment/:id", ap.UpdateCommentHandler, authed)
	handle(http.MethodDelete, "/comment/:id", ap.DeleteCommentHandler, authed)

	// --- suggestions ---
	handle(http.MethodGet, "/contributeIdeas", ap.ListSuggestionsHandler, managers)
	handle(http.MethodGet, "/contributeIdeas/:id", ap.GetSuggestionHandler, authed)
	handle(http.MethodPost, "/contributeIdeas", ap.CreateSuggestionHandler)
	handle(http.MethodPut, "/contributeIdeas/:id", ap.UpdateSuggestionHandler, authed)
	handle(http.MethodDelete, "/contributeIdeas/:id", ap.DeleteSuggestionHandler, managers)

	// --- user administration ---
	handle(http.MethodGet, "/user", ap.ListUsersHandler, admins)
	handle(http.MethodGet, "/user/:id", ap.GetUserHandler, admins)
	handle(http.MethodPost, "/user", ap.CreateUserHandler, admins)
	handle(http.MethodPut, "/user/:id", ap.UpdateUserHandler, authed)
	handle(http.MethodDelete, "/user/:id", ap.DeleteUserHandler, admins)

	// --- lookups backing the frontend forms ---
	handle(http.MethodGet, "/userCheck/checkBooking", ap.CheckBookingHandler)
	handle(http.MethodGet, "/userCheck/restaurant", ap.ManagedRestaurantsHandler, staff)

	// --- uploads ---
	handle(http.MethodPost, "/file/upload", ap.UploadFileHandler, authed)
	ap.Router().Static("/static/*filepath", http.Dir(cfg.Uploads.Dir))
}
