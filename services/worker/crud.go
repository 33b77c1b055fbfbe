package worker

import (
	"fmt"

	workerRepo "servana/database/repository/worker"
	"servana/models"
)

// Register validates and stores a new worker. The assignedServices set must
// stay within the services of the worker's assigned categories; the check
// runs here, at edit time, against the company catalog.
func (svc *DefaultWorkerService) Register(worker *models.Worker) error {
	mapping, err := svc.serviceCategoryMap(worker.CompanyID)
	if err != nil {
		return err
	}
	if err := worker.Validate(mapping); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return svc.Repo.Create(worker)
}

// Update validates and rewrites an existing worker. The worker must already
// belong to the company named on the input.
func (svc *DefaultWorkerService) Update(worker *models.Worker) error {
	if _, err := svc.getOwned(worker.CompanyID, worker.ID); err != nil {
		return err
	}
	mapping, err := svc.serviceCategoryMap(worker.CompanyID)
	if err != nil {
		return err
	}
	if err := worker.Validate(mapping); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return svc.Repo.Update(worker)
}

// Delete removes one of the company's workers.
func (svc *DefaultWorkerService) Delete(companyID, id string) error {
	if _, err := svc.getOwned(companyID, id); err != nil {
		return err
	}
	return svc.Repo.Delete(id)
}

// GetByID returns one of the company's workers.
func (svc *DefaultWorkerService) GetByID(companyID, id string) (*models.Worker, error) {
	return svc.getOwned(companyID, id)
}

// getOwned loads a worker and verifies it belongs to the company. A worker
// owned elsewhere is reported as not found, leaking nothing about other
// companies' rosters.
func (svc *DefaultWorkerService) getOwned(companyID, id string) (*models.Worker, error) {
	w, err := svc.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w.CompanyID != companyID {
		return nil, workerRepo.ErrNotFound
	}
	return w, nil
}

// GetByCompany returns all workers of a company.
func (svc *DefaultWorkerService) GetByCompany(companyID string) ([]models.Worker, error) {
	return svc.Repo.GetByCompany(companyID)
}

// serviceCategoryMap maps each company service id to the company category it
// belongs to, via the shared master category reference.
func (svc *DefaultWorkerService) serviceCategoryMap(companyID string) (map[string]string, error) {
	categories, err := svc.Catalog.GetCategoriesByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for company %s: %w", companyID, err)
	}
	byMaster := make(map[string]string, len(categories))
	for _, c := range categories {
		byMaster[c.MasterCategoryID] = c.ID
	}

	services, err := svc.Catalog.GetServicesByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load services for company %s: %w", companyID, err)
	}
	mapping := make(map[string]string, len(services))
	for _, s := range services {
		mapping[s.ID] = byMaster[s.MasterCategoryID]
	}
	return mapping, nil
}
