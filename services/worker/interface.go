package worker

import (
	"errors"

	catalogRepo "servana/database/repository/catalog"
	workerRepo "servana/database/repository/worker"
	"servana/models"

	"go.uber.org/zap"
)

// ErrInvalid marks worker input rejected before any write was attempted.
var ErrInvalid = errors.New("invalid worker")

// WorkerService manages technicians and the activation cascade that keeps
// category/service availability consistent with worker availability. Workers
// are addressed within the calling company's session; an id owned by another
// company resolves as not found.
type WorkerService interface {
	Register(worker *models.Worker) error
	Update(worker *models.Worker) error
	Delete(companyID, id string) error
	GetByID(companyID, id string) (*models.Worker, error)
	GetByCompany(companyID string) ([]models.Worker, error)
	// SetActive toggles a worker and runs the cascade. It returns the names
	// of every category whose activation changed; an empty slice is the
	// silent no-op case.
	SetActive(companyID, workerID string, active bool) ([]string, error)
}

// DefaultWorkerService implements WorkerService.
type DefaultWorkerService struct {
	Repo    workerRepo.WorkerRepository
	Catalog catalogRepo.CatalogRepository
	Logger  *zap.Logger
}

func (svc *DefaultWorkerService) logger() *zap.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}
	return zap.L()
}
