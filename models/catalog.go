package models

import "time"

// Category is a company-scoped offering referencing a platform-wide master
// category. AutoDeactivated distinguishes cascade-driven deactivation (no
// active worker left) from a manual toggle by the operator.
type Category struct {
	ID               string    `bson:"id" json:"id"`
	CompanyID        string    `bson:"company_id" json:"companyId"`
	MasterCategoryID string    `bson:"master_category_id" json:"masterCategoryId"`
	Name             string    `bson:"name" json:"name"`
	ImageID          string    `bson:"image_id,omitempty" json:"imageId,omitempty"`
	IsActive         bool      `bson:"is_active" json:"isActive"`
	AutoDeactivated  bool      `bson:"auto_deactivated" json:"autoDeactivated"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

// Service is a company-scoped service under a master category.
type Service struct {
	ID               string    `bson:"id" json:"id"`
	CompanyID        string    `bson:"company_id" json:"companyId"`
	MasterServiceID  string    `bson:"master_service_id" json:"masterServiceId"`
	MasterCategoryID string    `bson:"master_category_id" json:"masterCategoryId"`
	Name             string    `bson:"name" json:"name"`
	Price            float64   `bson:"price" json:"price"`
	IsActive         bool      `bson:"is_active" json:"isActive"`
	AutoDeactivated  bool      `bson:"auto_deactivated" json:"autoDeactivated"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

// MirrorEntry is a row of the public-facing mirror collection consumed by the
// customer application. A master category or service is visible there exactly
// when at least one company still has it active.
type MirrorEntry struct {
	MasterID  string    `bson:"master_id" json:"masterId"`
	Kind      string    `bson:"kind" json:"kind"` // "category" or "service"
	Visible   bool      `bson:"visible" json:"visible"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

const (
	MirrorKindCategory = "category"
	MirrorKindService  = "service"
)
