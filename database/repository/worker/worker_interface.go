package workerRepo

import (
	"errors"

	"servana/models"
)

// ErrNotFound is returned when no worker matches the given id.
var ErrNotFound = errors.New("worker not found")

// WorkerRepository defines storage operations for workers.
type WorkerRepository interface {
	Create(worker *models.Worker) error
	Update(worker *models.Worker) error
	Delete(id string) error
	GetByID(id string) (*models.Worker, error)
	GetByCompany(companyID string) ([]models.Worker, error)
	GetActiveByCompany(companyID string) ([]models.Worker, error)
	SetActive(id string, active bool) error
	// CountOtherActiveWithCategory counts active workers of the company,
	// other than excludeWorkerID, assigned to the given category.
	CountOtherActiveWithCategory(companyID, categoryID, excludeWorkerID string) (int64, error)
}
