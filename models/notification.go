package models

import "time"

// Notification types.
const (
	NotificationTypeBooking = "booking"
	NotificationTypePayment = "payment"
	NotificationTypeReview  = "review"
	NotificationTypeDefault = "default"
)

// Notification is a single dashboard alert. The same value lives in two
// queues: the transient active queue (auto-evicted, capped at five) and the
// durable stored history (kept until the operator clears it).
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data,omitempty"`
}
