package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/db"
	"github.com/caasmo/tablebook/mail"
	"github.com/caasmo/tablebook/queue"
)

// BookingNoticeHandler sends the confirmation emails for a fresh booking:
// one to the customer, one to the restaurant manager. The payload carries
// ids only; the current rows are loaded at processing time.
type BookingNoticeHandler struct {
	db     db.DbApp
	config *config.Config
	mailer *mail.Mailer
	logger *slog.Logger
}

func NewBookingNoticeHandler(db db.DbApp, cfg *config.Config, mailer *mail.Mailer, logger *slog.Logger) *BookingNoticeHandler {
	return &BookingNoticeHandler{
		db:     db,
		config: cfg,
		mailer: mailer,
		logger: logger,
	}
}

// Handle implements the JobHandler interface for booking notifications.
func (h *BookingNoticeHandler) Handle(ctx context.Context, job db.Job) error {
	var payload queue.PayloadBookingNotice
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse booking notice payload: %w", err)
	}

	booking, err := h.db.GetBooking(payload.BookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		// Canceled before processing; nothing to announce.
		h.logger.Info("booking gone before notification", "booking_id", payload.BookingID)
		return nil
	}

	user, err := h.db.GetUserByID(payload.UserID)
	if err != nil {
		return fmt.Errorf("failed to get booking user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user not found for booking: %d", payload.BookingID)
	}

	contact, err := h.db.GetRestaurantContact(payload.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to get restaurant contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("restaurant not found for booking: %d", payload.BookingID)
	}

	notice := mail.BookingNotice{
		RestaurantName: contact.Name,
		Date:           booking.Date.Format("02/01/2006"),
		Time:           booking.Date.Format("15:04"),
		People:         strconv.Itoa(booking.People),
	}

	if user.Email != "" {
		notice.Recipient = user.FirstName
		body := mail.CustomerBookingBody(notice)
		if err := h.mailer.Send(ctx, user.Email, "Booking confirmation", body); err != nil {
			return fmt.Errorf("failed to send customer booking email: %w", err)
		}
	}

	if contact.Email != "" {
		notice.Recipient = contact.ManagerFirstName
		body := mail.ManagerBookingBody(notice)
		if err := h.mailer.Send(ctx, contact.Email, "New table booking", body); err != nil {
			return fmt.Errorf("failed to send manager booking email: %w", err)
		}
	}

	h.logger.Info("sent booking notifications", "booking_id", booking.ID, "restaurant", contact.Name)
	return nil
}
