package notification

import (
	"context"
	"time"

	"servana/models"
)

// Fixed per-type titles.
const (
	TitleBooking = "New Booking"
	TitlePayment = "Payment Received"
	TitleReview  = "New Review"
	TitleDefault = "Notification"
)

// Eviction delays for the active queue.
const (
	AutoEvictDelay   = 5 * time.Second
	ManualEvictDelay = 3 * time.Second
)

// The active queue never holds more than this many alerts.
const MaxActive = 5

// How many bookings the initial snapshot covers.
const SnapshotLimit = 50

// BookingFeed is the slice of the booking repository the engine consumes: an
// ordered initial snapshot plus an insert subscription.
type BookingFeed interface {
	GetRecentByCompany(companyID string, limit int64) ([]models.Booking, error)
	WatchInserts(ctx context.Context, companyID string) (<-chan models.Booking, func(), error)
}

// Pusher delivers the OS-level alert. Failures are swallowed by the engine;
// a push that cannot be delivered degrades to an in-app-only notification.
type Pusher interface {
	Push(ctx context.Context, companyID, title, body string, data map[string]string) error
}

// TitleFor returns the fixed title for a notification type.
func TitleFor(notificationType string) string {
	switch notificationType {
	case models.NotificationTypeBooking:
		return TitleBooking
	case models.NotificationTypePayment:
		return TitlePayment
	case models.NotificationTypeReview:
		return TitleReview
	}
	return TitleDefault
}
