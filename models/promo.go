package models

import (
	"fmt"
	"time"
)

// Coupon is a discount code managed by the marketplace admin.
type Coupon struct {
	ID          string    `bson:"id" json:"id"`
	Code        string    `bson:"code" json:"code"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Discount    float64   `bson:"discount" json:"discount"` // percentage, 0-100
	MinOrder    float64   `bson:"min_order" json:"minOrder"`
	ExpiresAt   time.Time `bson:"expires_at" json:"expiresAt"`
	IsActive    bool      `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Validate checks coupon input before any write is attempted.
func (c *Coupon) Validate(now time.Time) error {
	if c.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if c.Discount <= 0 || c.Discount > 100 {
		return fmt.Errorf("discount must be between 0 and 100")
	}
	if !c.ExpiresAt.After(now) {
		return fmt.Errorf("expiry date must be in the future")
	}
	return nil
}

// Banner is a promotional image shown in the customer application.
type Banner struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	ImageID   string    `bson:"image_id" json:"imageId"`
	TargetURL string    `bson:"target_url,omitempty" json:"targetUrl,omitempty"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Hotspot is a delivery zone with a center point and radius.
type Hotspot struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	RadiusKM  float64   `bson:"radius_km" json:"radiusKm"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PushCampaign is an admin-authored push notification fanned out to an FCM
// topic by the background worker.
type PushCampaign struct {
	ID        string     `bson:"id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	Body      string     `bson:"body" json:"body"`
	Topic     string     `bson:"topic" json:"topic"`
	Status    string     `bson:"status" json:"status"` // "queued", "sent", "failed"
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	SentAt    *time.Time `bson:"sent_at,omitempty" json:"sentAt,omitempty"`
}
