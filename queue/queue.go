package queue

import "time"

// Job types
const (
	JobTypeBookingNotice = "job_type_booking_notice"
)

// Job statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// PayloadBookingNotice identifies a freshly created booking whose
// confirmation emails are still to be sent. The delivery handler re-reads
// the booking at processing time.
type PayloadBookingNotice struct {
	BookingID    int64 `json:"booking_id"`
	RestaurantID int64 `json:"restaurant_id"`
	UserID       int64 `json:"user_id"`
}

// CoolDownBucket calculates which time bucket t falls into for the given
// duration period. Requests within the same bucket map to the same number,
// which combined with a unique constraint gives a simple rate limit.
// Panics on non-positive duration to prevent undefined behavior.
func CoolDownBucket(duration time.Duration, t time.Time) int {
	if duration <= 0 {
		panic("duration must be positive")
	}
	return int(t.Unix() / int64(duration.Seconds()))
}
