package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponValidate(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	valid := Coupon{Code: "WELCOME10", Discount: 10, ExpiresAt: now.AddDate(0, 1, 0)}
	assert.NoError(t, valid.Validate(now))

	tests := []struct {
		name   string
		mutate func(*Coupon)
	}{
		{"missing code", func(c *Coupon) { c.Code = "" }},
		{"zero discount", func(c *Coupon) { c.Discount = 0 }},
		{"discount over 100", func(c *Coupon) { c.Discount = 150 }},
		{"expiry in the past", func(c *Coupon) { c.ExpiresAt = now.AddDate(0, 0, -1) }},
		{"expiry right now", func(c *Coupon) { c.ExpiresAt = now }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate(now))
		})
	}
}

func TestRiderValidate(t *testing.T) {
	valid := Rider{Name: "Kiran", Phone: "9000000000", AadharNumber: "123456789012"}
	assert.NoError(t, valid.Validate())

	noAadhar := Rider{Name: "Kiran", Phone: "9000000000"}
	assert.NoError(t, noAadhar.Validate(), "aadhar is optional")

	badAadhar := Rider{Name: "Kiran", Phone: "9000000000", AadharNumber: "12ab"}
	assert.Error(t, badAadhar.Validate())

	noName := Rider{Phone: "9000000000"}
	assert.Error(t, noName.Validate())
}
