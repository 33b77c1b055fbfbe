package models

import (
	"fmt"
	"time"
)

// Rider is a delivery rider registered through the admin dashboard.
type Rider struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Phone        string    `bson:"phone" json:"phone"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	AadharNumber string    `bson:"aadhar_number,omitempty" json:"aadharNumber,omitempty"`
	VehicleNo    string    `bson:"vehicle_no,omitempty" json:"vehicleNo,omitempty"`
	PhotoID      string    `bson:"photo_id,omitempty" json:"photoId,omitempty"`
	IsActive     bool      `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Validate checks rider registration input.
func (r *Rider) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rider name is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("rider phone is required")
	}
	if r.AadharNumber != "" && !aadharPattern.MatchString(r.AadharNumber) {
		return fmt.Errorf("aadhar number must be a 12-digit number")
	}
	return nil
}
