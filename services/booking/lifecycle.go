package booking

import (
	"fmt"
	"time"

	bookingRepo "servana/database/repository/booking"
	"servana/models"
	"servana/utils"

	"go.uber.org/zap"
)

// GetByID returns a single booking of the company.
func (svc *DefaultBookingService) GetByID(companyID, id string) (*models.Booking, error) {
	return svc.Repo.GetByID(companyID, id)
}

// Assign moves a pending booking to assigned. The worker must resolve against
// the company's active workers; an empty worker id is rejected before any
// read or write.
func (svc *DefaultBookingService) Assign(companyID, bookingID, workerID string) (*models.Booking, error) {
	if workerID == "" {
		return nil, NewValidationError("no worker selected")
	}

	workers, err := svc.WorkerRepo.GetActiveByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active workers: %w", err)
	}
	var worker *models.Worker
	for i := range workers {
		if workers[i].ID == workerID {
			worker = &workers[i]
			break
		}
	}
	if worker == nil {
		return nil, NewValidationError("selected worker is not an active worker of this company")
	}

	now := time.Now()
	fields := map[string]interface{}{
		"status":      models.BookingStatusAssigned,
		"worker_id":   worker.ID,
		"worker_name": worker.Name,
		"assigned_at": now,
	}
	if err := svc.Repo.Transition(companyID, bookingID, models.BookingStatusPending, fields); err != nil {
		return nil, fmt.Errorf("failed to assign booking %s: %w", bookingID, err)
	}
	return svc.Repo.GetByID(companyID, bookingID)
}

// Start moves an assigned booking to started and generates a fresh six-digit
// code the worker must present back at completion. otpVerified resets to
// false until Complete succeeds.
func (svc *DefaultBookingService) Start(companyID, bookingID string) (*models.Booking, error) {
	otp, err := utils.GenerateNumericOTP(6)
	if err != nil {
		return nil, fmt.Errorf("failed to generate start code: %w", err)
	}

	fields := map[string]interface{}{
		"status":       models.BookingStatusStarted,
		"start_otp":    otp,
		"otp_verified": false,
		"started_at":   time.Now(),
	}
	if err := svc.Repo.Transition(companyID, bookingID, models.BookingStatusAssigned, fields); err != nil {
		return nil, fmt.Errorf("failed to start booking %s: %w", bookingID, err)
	}
	return svc.Repo.GetByID(companyID, bookingID)
}

// Complete finishes a started booking after verifying the entered code
// textually against the stored start OTP. On mismatch nothing is written. On
// match the OTP is cleared so it can never be reused.
func (svc *DefaultBookingService) Complete(companyID, bookingID, enteredOtp string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(companyID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusStarted {
		return nil, NewValidationError("booking has not been started")
	}
	if enteredOtp != b.StartOtp {
		return nil, ErrInvalidCode
	}

	fields := map[string]interface{}{
		"status":       models.BookingStatusCompleted,
		"otp_verified": true,
		"start_otp":    "",
		"completed_at": time.Now(),
	}
	if err := svc.Repo.Transition(companyID, bookingID, models.BookingStatusStarted, fields); err != nil {
		return nil, fmt.Errorf("failed to complete booking %s: %w", bookingID, err)
	}
	return svc.Repo.GetByID(companyID, bookingID)
}

// Reject moves a booking to rejected from whatever non-terminal state it is in.
func (svc *DefaultBookingService) Reject(companyID, bookingID string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(companyID, bookingID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalStatus(b.Status) {
		return nil, NewValidationError("booking is already closed")
	}

	fields := map[string]interface{}{"status": models.BookingStatusRejected}
	if err := svc.Repo.Transition(companyID, bookingID, b.Status, fields); err != nil {
		return nil, fmt.Errorf("failed to reject booking %s: %w", bookingID, err)
	}
	return svc.Repo.GetByID(companyID, bookingID)
}

// PersistExpiry writes a derived expiry back to storage. It is invoked from
// the background worker, once per detected transition; a booking that already
// moved on (ErrStaleStatus) is left alone.
func PersistExpiry(repo bookingRepo.BookingRepository, companyID, bookingID, fromStatus string, logger *zap.Logger) error {
	fields := map[string]interface{}{
		"status":     models.BookingStatusExpired,
		"expired_at": time.Now(),
	}
	err := repo.Transition(companyID, bookingID, fromStatus, fields)
	if err == bookingRepo.ErrStaleStatus {
		logger.Debug("expiry already persisted or superseded", zap.String("bookingId", bookingID))
		return nil
	}
	return err
}
