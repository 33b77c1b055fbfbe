package models

import (
	"fmt"
	"regexp"
	"time"
)

var aadharPattern = regexp.MustCompile(`^\d{12}$`)

// Worker is a technician employed by a service company.
type Worker struct {
	ID                 string    `bson:"id" json:"id"`
	CompanyID          string    `bson:"company_id" json:"companyId"`
	Name               string    `bson:"name" json:"name"`
	Phone              string    `bson:"phone" json:"phone"`
	AadharNumber       string    `bson:"aadhar_number,omitempty" json:"aadharNumber,omitempty"`
	AssignedCategories []string  `bson:"assigned_categories" json:"assignedCategories"`
	AssignedServices   []string  `bson:"assigned_services" json:"assignedServices"`
	IsActive           bool      `bson:"is_active" json:"isActive"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the fields an operator can get wrong at edit time.
// assignedServices must stay within the services of assignedCategories; that
// containment is checked here against the provided service->category mapping,
// not at persistence time.
func (w *Worker) Validate(serviceCategory map[string]string) error {
	if w.Name == "" {
		return fmt.Errorf("worker name is required")
	}
	if w.Phone == "" {
		return fmt.Errorf("worker phone is required")
	}
	if w.AadharNumber != "" && !aadharPattern.MatchString(w.AadharNumber) {
		return fmt.Errorf("aadhar number must be a 12-digit number")
	}
	assigned := make(map[string]bool, len(w.AssignedCategories))
	for _, c := range w.AssignedCategories {
		assigned[c] = true
	}
	for _, s := range w.AssignedServices {
		cat, ok := serviceCategory[s]
		if !ok || !assigned[cat] {
			return fmt.Errorf("service %s does not belong to an assigned category", s)
		}
	}
	return nil
}
