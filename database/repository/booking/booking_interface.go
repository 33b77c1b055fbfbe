package bookingRepo

import (
	"context"
	"errors"

	"servana/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrStaleStatus is returned when a transition's expected prior status no
// longer matches the persisted one. Transitions are forward-only; a stale
// expectation means another actor already moved the booking.
var ErrStaleStatus = errors.New("booking status changed since read")

// BookingRepository defines storage operations for bookings. Reads and writes
// of a single booking are scoped to the owning company; an id that exists
// under another company behaves as if it did not exist.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(companyID, id string) (*models.Booking, error)
	GetByCompany(companyID string) ([]models.Booking, error)
	GetRecentByCompany(companyID string, limit int64) ([]models.Booking, error)
	// Transition applies fields to the booking only if it belongs to the
	// company and its persisted status still equals fromStatus.
	Transition(companyID, id, fromStatus string, fields map[string]interface{}) error
	// WatchInserts subscribes to newly inserted bookings for a company. The
	// returned cancel function tears the subscription down; the channel is
	// closed when the stream ends or errors.
	WatchInserts(ctx context.Context, companyID string) (<-chan models.Booking, func(), error)
}
