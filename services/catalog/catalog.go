// Package catalog manages company categories and services and keeps the
// public mirror in step with manual activation toggles. The worker cascade
// reuses the same mirror rules from its own side.
package catalog

import (
	"errors"
	"fmt"

	catalogRepo "servana/database/repository/catalog"
	"servana/models"

	"go.uber.org/zap"
)

// ErrInvalid marks catalog input rejected before any write was attempted.
var ErrInvalid = errors.New("invalid catalog entry")

// CatalogService manages the company catalog. Entries are addressed within
// the calling company's session; an id owned by another company resolves as
// not found.
type CatalogService interface {
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(companyID, id string) error
	GetCategoriesByCompany(companyID string) ([]models.Category, error)
	// SetCategoryActive is a manual operator toggle; autoDeactivated is
	// cleared either way because the operator has overridden the cascade.
	SetCategoryActive(companyID, id string, active bool) error

	CreateService(service *models.Service) error
	UpdateService(service *models.Service) error
	DeleteService(companyID, id string) error
	GetServicesByCompany(companyID string) ([]models.Service, error)
	SetServiceActive(companyID, id string, active bool) error
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Logger *zap.Logger
}

func (svc *DefaultCatalogService) logger() *zap.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}
	return zap.L()
}

// CreateCategory validates and stores a new category, then publishes its
// master entry to the mirror.
func (svc *DefaultCatalogService) CreateCategory(category *models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalid)
	}
	if category.MasterCategoryID == "" {
		return fmt.Errorf("%w: master category reference is required", ErrInvalid)
	}
	if err := svc.Repo.CreateCategory(category); err != nil {
		return err
	}
	svc.syncCategoryMirror(category.MasterCategoryID)
	return nil
}

// UpdateCategory rewrites an existing category. The category must already
// belong to the company named on the input.
func (svc *DefaultCatalogService) UpdateCategory(category *models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalid)
	}
	if _, err := svc.getOwnedCategory(category.CompanyID, category.ID); err != nil {
		return err
	}
	return svc.Repo.UpdateCategory(category)
}

// DeleteCategory removes a category and re-derives mirror visibility for its
// master entry.
func (svc *DefaultCatalogService) DeleteCategory(companyID, id string) error {
	cat, err := svc.getOwnedCategory(companyID, id)
	if err != nil {
		return err
	}
	if err := svc.Repo.DeleteCategory(id); err != nil {
		return err
	}
	svc.syncCategoryMirror(cat.MasterCategoryID)
	return nil
}

// GetCategoriesByCompany returns the company's categories.
func (svc *DefaultCatalogService) GetCategoriesByCompany(companyID string) ([]models.Category, error) {
	return svc.Repo.GetCategoriesByCompany(companyID)
}

// SetCategoryActive applies a manual activation toggle and re-derives the
// mirror. A toggle to the current state is a no-op apart from clearing the
// autoDeactivated marker.
func (svc *DefaultCatalogService) SetCategoryActive(companyID, id string, active bool) error {
	cat, err := svc.getOwnedCategory(companyID, id)
	if err != nil {
		return err
	}
	if cat.IsActive == active && !cat.AutoDeactivated {
		return nil
	}
	if err := svc.Repo.SetCategoryActivation(id, active, false); err != nil {
		return err
	}
	svc.syncCategoryMirror(cat.MasterCategoryID)
	return nil
}

// CreateService validates and stores a new service.
func (svc *DefaultCatalogService) CreateService(service *models.Service) error {
	if service.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalid)
	}
	if service.MasterServiceID == "" || service.MasterCategoryID == "" {
		return fmt.Errorf("%w: master references are required", ErrInvalid)
	}
	if err := svc.Repo.CreateService(service); err != nil {
		return err
	}
	svc.syncServiceMirror(service.MasterServiceID)
	return nil
}

// UpdateService rewrites an existing service. The service must already belong
// to the company named on the input.
func (svc *DefaultCatalogService) UpdateService(service *models.Service) error {
	if service.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalid)
	}
	if _, err := svc.getOwnedService(service.CompanyID, service.ID); err != nil {
		return err
	}
	return svc.Repo.UpdateService(service)
}

// DeleteService removes a service and re-derives its master mirror entry.
func (svc *DefaultCatalogService) DeleteService(companyID, id string) error {
	s, err := svc.getOwnedService(companyID, id)
	if err != nil {
		return err
	}
	if err := svc.Repo.DeleteService(id); err != nil {
		return err
	}
	svc.syncServiceMirror(s.MasterServiceID)
	return nil
}

// GetServicesByCompany returns the company's services.
func (svc *DefaultCatalogService) GetServicesByCompany(companyID string) ([]models.Service, error) {
	return svc.Repo.GetServicesByCompany(companyID)
}

// SetServiceActive applies a manual activation toggle to one service.
func (svc *DefaultCatalogService) SetServiceActive(companyID, id string, active bool) error {
	s, err := svc.getOwnedService(companyID, id)
	if err != nil {
		return err
	}
	if s.IsActive == active && !s.AutoDeactivated {
		return nil
	}
	if err := svc.Repo.SetServiceActivation(id, active, false); err != nil {
		return err
	}
	svc.syncServiceMirror(s.MasterServiceID)
	return nil
}

// getOwnedCategory loads a category and verifies it belongs to the company.
// An entry owned elsewhere is reported as not found.
func (svc *DefaultCatalogService) getOwnedCategory(companyID, id string) (*models.Category, error) {
	cat, err := svc.Repo.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if cat.CompanyID != companyID {
		return nil, catalogRepo.ErrNotFound
	}
	return cat, nil
}

func (svc *DefaultCatalogService) getOwnedService(companyID, id string) (*models.Service, error) {
	s, err := svc.Repo.GetServiceByID(id)
	if err != nil {
		return nil, err
	}
	if s.CompanyID != companyID {
		return nil, catalogRepo.ErrNotFound
	}
	return s, nil
}

// syncCategoryMirror re-derives public visibility for a master category.
// Mirror writes are best-effort: a failure leaves a stale row, logged for
// reconciliation, and never blocks the catalog operation itself.
func (svc *DefaultCatalogService) syncCategoryMirror(masterCategoryID string) {
	count, err := svc.Repo.CountActiveByMasterCategory(masterCategoryID)
	if err != nil {
		svc.logger().Error("mirror sync failed",
			zap.String("masterCategoryId", masterCategoryID), zap.Error(err))
		return
	}
	if err := svc.Repo.SetMirrorVisibility(models.MirrorKindCategory, masterCategoryID, count > 0); err != nil {
		svc.logger().Error("mirror sync failed",
			zap.String("masterCategoryId", masterCategoryID), zap.Error(err))
	}
}

func (svc *DefaultCatalogService) syncServiceMirror(masterServiceID string) {
	count, err := svc.Repo.CountActiveByMasterService(masterServiceID)
	if err != nil {
		svc.logger().Error("mirror sync failed",
			zap.String("masterServiceId", masterServiceID), zap.Error(err))
		return
	}
	if err := svc.Repo.SetMirrorVisibility(models.MirrorKindService, masterServiceID, count > 0); err != nil {
		svc.logger().Error("mirror sync failed",
			zap.String("masterServiceId", masterServiceID), zap.Error(err))
	}
}
