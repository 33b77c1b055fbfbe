package models

import "time"

// Booking statuses. Transitions are forward-only:
// pending -> assigned -> started -> completed, with rejected and expired as
// terminal branches reachable from any non-terminal state.
const (
	BookingStatusPending   = "pending"
	BookingStatusAssigned  = "assigned"
	BookingStatusStarted   = "started"
	BookingStatusCompleted = "completed"
	BookingStatusRejected  = "rejected"
	BookingStatusExpired   = "expired"
)

// Booking represents a scheduled service job. Bookings are created by the
// customer-facing application with status pending and are never deleted.
type Booking struct {
	ID            string     `bson:"id" json:"id"`
	CompanyID     string     `bson:"company_id" json:"companyId"`
	CustomerName  string     `bson:"customer_name" json:"customerName"`
	CustomerPhone string     `bson:"customer_phone" json:"customerPhone"`
	Address       string     `bson:"address" json:"address"`
	ServiceName   string     `bson:"service_name" json:"serviceName"`
	WorkName      string     `bson:"work_name" json:"workName"`
	Date          string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time          string     `bson:"time" json:"time"`
	Status        string     `bson:"status" json:"status"`
	TotalPrice    float64    `bson:"total_price" json:"totalPrice"`
	StartOtp      string     `bson:"start_otp,omitempty" json:"startOtp,omitempty"` // set when entering started, never reused
	OtpVerified   bool       `bson:"otp_verified" json:"otpVerified"`
	WorkerID      string     `bson:"worker_id,omitempty" json:"workerId,omitempty"`
	WorkerName    string     `bson:"worker_name,omitempty" json:"workerName,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	AssignedAt    *time.Time `bson:"assigned_at,omitempty" json:"assignedAt,omitempty"`
	StartedAt     *time.Time `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	CompletedAt   *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	ExpiredAt     *time.Time `bson:"expired_at,omitempty" json:"expiredAt,omitempty"`
}

// IsTerminalStatus reports whether a booking status admits no further transitions.
func IsTerminalStatus(status string) bool {
	switch status {
	case BookingStatusCompleted, BookingStatusRejected, BookingStatusExpired:
		return true
	}
	return false
}

// BookingView is a Booking projected for the dashboard list: the status shown
// may differ from the persisted one when expiry has been derived but not yet
// written back, and Urgent is a presentation-only flag.
type BookingView struct {
	Booking
	DisplayStatus string `json:"displayStatus"`
	Urgent        bool   `json:"urgent"`
}
