package catalogRepo

import (
	"errors"

	"servana/models"
)

// ErrNotFound is returned when no catalog document matches the given id.
var ErrNotFound = errors.New("catalog entry not found")

// CatalogRepository defines storage operations for company categories and
// services plus the public-facing mirror collection.
type CatalogRepository interface {
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id string) error
	GetCategoryByID(id string) (*models.Category, error)
	GetCategoriesByCompany(companyID string) ([]models.Category, error)
	SetCategoryActivation(id string, active, autoDeactivated bool) error

	CreateService(service *models.Service) error
	UpdateService(service *models.Service) error
	DeleteService(id string) error
	GetServiceByID(id string) (*models.Service, error)
	GetServicesByCompany(companyID string) ([]models.Service, error)
	GetServicesByMasterCategory(companyID, masterCategoryID string) ([]models.Service, error)
	SetServiceActivation(id string, active, autoDeactivated bool) error

	// Cross-company activation counts used to decide public mirror visibility.
	CountActiveByMasterCategory(masterCategoryID string) (int64, error)
	CountActiveByMasterService(masterServiceID string) (int64, error)
	SetMirrorVisibility(kind, masterID string, visible bool) error
}
