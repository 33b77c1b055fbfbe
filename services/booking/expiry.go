package booking

import (
	"time"

	"servana/models"
)

const dateLayout = "2006-01-02"

// DeriveDisplayStatus computes the status a booking should be presented with
// at the given instant, without touching storage. A booking whose date is
// strictly before today and whose persisted status is not terminal is shown
// as expired; everything else passes through unchanged.
func DeriveDisplayStatus(b models.Booking, now time.Time) string {
	if models.IsTerminalStatus(b.Status) {
		return b.Status
	}
	date, err := time.ParseInLocation(dateLayout, b.Date, now.Location())
	if err != nil {
		// Unparseable dates never expire; the booking keeps its stored status.
		return b.Status
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return models.BookingStatusExpired
	}
	return b.Status
}

// IsUrgent reports whether the booking deserves the dashboard's urgent
// highlight: any state that still needs operator action.
func IsUrgent(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusAssigned, models.BookingStatusStarted:
		return true
	}
	return false
}
