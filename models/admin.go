package models

import "time"

// Admin roles.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleCompany    = "company"
)

// Admin is a dashboard operator. Permissions is the flat list of permission
// strings gating individual route groups; superadmins implicitly hold all of
// them.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	CompanyID    string    `bson:"company_id,omitempty" json:"companyId,omitempty"`
	Permissions  []string  `bson:"permissions" json:"permissions"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasPermission reports whether the admin holds the given permission string.
func (a *Admin) HasPermission(perm string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
