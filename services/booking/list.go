package booking

import (
	"fmt"
	"strings"
	"time"

	"servana/models"

	"go.uber.org/zap"
)

// List returns the company's bookings projected for the dashboard: expiry is
// derived lazily against now, filters and search are applied over the derived
// status, and every freshly detected expiry is handed to the background
// worker for a best-effort write. Enqueue failures are logged per booking and
// never block the rest of the batch.
func (svc *DefaultBookingService) List(companyID string, filter ListFilter, now time.Time) ([]models.BookingView, error) {
	bookings, err := svc.Repo.GetByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for company %s: %w", companyID, err)
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		display := DeriveDisplayStatus(b, now)
		if display == models.BookingStatusExpired && b.Status != models.BookingStatusExpired {
			if svc.Expiry != nil {
				if err := svc.Expiry.EnqueueExpiry(companyID, b.ID, b.Status); err != nil {
					svc.logger().Error("failed to enqueue expiry persistence",
						zap.String("bookingId", b.ID), zap.Error(err))
				}
			}
		}
		view := models.BookingView{
			Booking:       b,
			DisplayStatus: display,
			Urgent:        IsUrgent(display),
		}
		if matchesFilter(view, filter) {
			views = append(views, view)
		}
	}
	return views, nil
}

func matchesFilter(v models.BookingView, filter ListFilter) bool {
	switch filter.Group {
	case "", GroupAll:
	case GroupPending:
		if v.DisplayStatus != models.BookingStatusPending {
			return false
		}
	case GroupAssigned:
		if v.DisplayStatus != models.BookingStatusAssigned {
			return false
		}
	case GroupStarted:
		if v.DisplayStatus != models.BookingStatusStarted {
			return false
		}
	case GroupCompleted:
		if v.DisplayStatus != models.BookingStatusCompleted {
			return false
		}
	case GroupClosed:
		if v.DisplayStatus != models.BookingStatusExpired && v.DisplayStatus != models.BookingStatusRejected {
			return false
		}
	default:
		return false
	}

	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(filter.Search)
	return strings.Contains(strings.ToLower(v.ServiceName), needle) ||
		strings.Contains(strings.ToLower(v.CustomerName), needle) ||
		strings.Contains(strings.ToLower(v.ID), needle)
}
