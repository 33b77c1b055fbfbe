package notification

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"servana/models"
)

var idCounter uint64

// newID returns a synthetic, time-based notification id. The counter suffix
// keeps ids unique when several events land in the same millisecond.
func newID(now time.Time) string {
	n := atomic.AddUint64(&idCounter, 1)
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(n, 10)
}

// ComposeBookingMessage renders the alert line for a booking:
// the work name (falling back to the service name), the service name in
// parentheses when distinct, the customer, and the slot time when present.
func ComposeBookingMessage(b models.Booking) string {
	name := b.WorkName
	if name == "" {
		name = b.ServiceName
	}
	msg := name
	if b.ServiceName != "" && b.ServiceName != name {
		msg = fmt.Sprintf("%s (%s)", msg, b.ServiceName)
	}
	msg = fmt.Sprintf("%s - %s", msg, b.CustomerName)
	if b.Time != "" {
		msg = fmt.Sprintf("%s at %s", msg, b.Time)
	}
	return msg
}

// FromBooking builds the notification emitted for a newly detected booking.
func FromBooking(b models.Booking, now time.Time) models.Notification {
	return models.Notification{
		ID:        newID(now),
		Type:      models.NotificationTypeBooking,
		Title:     TitleBooking,
		Message:   ComposeBookingMessage(b),
		Timestamp: now,
		Data: map[string]string{
			"bookingId": b.ID,
			"companyId": b.CompanyID,
		},
	}
}
