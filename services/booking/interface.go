package booking

import (
	"time"

	bookingRepo "servana/database/repository/booking"
	workerRepo "servana/database/repository/worker"
	"servana/models"

	"go.uber.org/zap"
)

// Status groups accepted by List.
const (
	GroupAll       = "all"
	GroupPending   = "pending"
	GroupAssigned  = "assigned"
	GroupStarted   = "started"
	GroupCompleted = "completed"
	GroupClosed    = "closed" // expired or rejected
)

// ListFilter narrows the booking list. Search matches serviceName,
// customerName or id, case-insensitively.
type ListFilter struct {
	Group  string
	Search string
}

// ExpiryEnqueuer hands off the best-effort background write that persists a
// derived expiry. Implemented by the asynq task queue in production.
type ExpiryEnqueuer interface {
	EnqueueExpiry(companyID, bookingID, fromStatus string) error
}

// BookingService owns the canonical booking status transitions. Every
// operation is scoped to the calling company's session: a booking id owned by
// another company resolves as not found, never as someone else's booking.
type BookingService interface {
	List(companyID string, filter ListFilter, now time.Time) ([]models.BookingView, error)
	GetByID(companyID, id string) (*models.Booking, error)
	Assign(companyID, bookingID, workerID string) (*models.Booking, error)
	Start(companyID, bookingID string) (*models.Booking, error)
	Complete(companyID, bookingID, enteredOtp string) (*models.Booking, error)
	Reject(companyID, bookingID string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	WorkerRepo workerRepo.WorkerRepository
	Expiry     ExpiryEnqueuer
	Logger     *zap.Logger
}

func (svc *DefaultBookingService) logger() *zap.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}
	return zap.L()
}
