package mail

import (
	"fmt"
	"net/url"
)

// The templates mirror the emails of the booking site: account verification,
// password reset, and the two booking notifications.

// VerificationBody renders the account-confirmation email. The link embeds
// both the email and the single-use action token.
func VerificationBody(clientBaseURL, email, token string) string {
	link := fmt.Sprintf("%s/confirm-user?email=%s&token=%s",
		clientBaseURL, url.QueryEscape(email), url.QueryEscape(token))
	return fmt.Sprintf(`<h2>Welcome!</h2>
<p>Your account has been created. Please confirm your email address:</p>
<p><a href="%s">Confirm account</a></p>`, link)
}

// PasswordResetBody renders the reset-password email.
func PasswordResetBody(clientBaseURL, email, token string) string {
	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		clientBaseURL, url.QueryEscape(email), url.QueryEscape(token))
	return fmt.Sprintf(`<p>Click the link below to choose a new password for your account:</p>
<p><a href="%s">Reset password</a></p>`, link)
}

// BookingNotice carries the fields of a booking notification.
type BookingNotice struct {
	Recipient      string
	RestaurantName string
	Date           string
	Time           string
	People         string
}

// CustomerBookingBody renders the confirmation sent to the booking customer.
func CustomerBookingBody(n BookingNotice) string {
	return fmt.Sprintf(`<h2>Dear %s,</h2>
<p>Your table has been booked.</p>
<h3>Booking details:</h3>
<table style="width: 400px">
<tr><td>Restaurant:</td><td style="text-align: right">%s</td></tr>
<tr><td>Date:</td><td style="text-align: right">%s</td></tr>
<tr><td>Time:</td><td style="text-align: right">%s</td></tr>
<tr><td>Guests:</td><td style="text-align: right">%s</td></tr>
</table>
<p>Enjoy your time at the restaurant!</p>`,
		n.Recipient, n.RestaurantName, n.Date, n.Time, n.People)
}

// ManagerBookingBody renders the notice sent to the restaurant manager.
func ManagerBookingBody(n BookingNotice) string {
	return fmt.Sprintf(`<h2>Hello %s,</h2>
<p>A new table booking has arrived for your restaurant.</p>
<h3>Booking details:</h3>
<table style="width: 400px">
<tr><td>Restaurant:</td><td style="text-align: right">%s</td></tr>
<tr><td>Date:</td><td style="text-align: right">%s</td></tr>
<tr><td>Time:</td><td style="text-align: right">%s</td></tr>
<tr><td>Guests:</td><td style="text-align: right">%s</td></tr>
</table>
<p>Please review and confirm.</p>`,
		n.Recipient, n.RestaurantName, n.Date, n.Time, n.People)
}
