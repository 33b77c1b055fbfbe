package worker

import (
	"fmt"

	"servana/models"

	"go.uber.org/zap"
)

// SetActive toggles a worker's availability and cascades the change into the
// company catalog and the public mirror.
//
// The cascade is idempotent: every write is preceded by a fresh read of the
// persisted state, so a second run with no intervening change performs no
// writes. It is not transactional: a failed update aborts the remaining steps
// for that category only, the partial result is logged with enough context to
// reconcile manually, and no retry is attempted.
func (svc *DefaultWorkerService) SetActive(companyID, workerID string, active bool) ([]string, error) {
	w, err := svc.getOwned(companyID, workerID)
	if err != nil {
		return nil, err
	}

	if w.IsActive != active {
		if err := svc.Repo.SetActive(workerID, active); err != nil {
			return nil, fmt.Errorf("failed to toggle worker %s: %w", workerID, err)
		}
	}

	var affected []string
	for _, categoryID := range w.AssignedCategories {
		var name string
		var changed bool
		if active {
			name, changed = svc.reactivateCategory(w, categoryID)
		} else {
			name, changed = svc.deactivateCategory(w, categoryID)
		}
		if changed {
			affected = append(affected, name)
		}
	}
	return affected, nil
}

// deactivateCategory runs the disable branch for one category: when no other
// active worker covers it, the category and its services are deactivated with
// autoDeactivated set, and the public mirror is hidden for any master entry
// no company still has active.
func (svc *DefaultWorkerService) deactivateCategory(w *models.Worker, categoryID string) (string, bool) {
	logger := svc.logger()

	others, err := svc.Repo.CountOtherActiveWithCategory(w.CompanyID, categoryID, w.ID)
	if err != nil {
		logger.Error("cascade aborted for category",
			zap.String("categoryId", categoryID), zap.String("phase", "count-workers"), zap.Error(err))
		return "", false
	}
	if others > 0 {
		// Another active worker keeps the category alive; nothing to do.
		return "", false
	}

	cat, err := svc.Catalog.GetCategoryByID(categoryID)
	if err != nil {
		logger.Error("cascade aborted for category",
			zap.String("categoryId", categoryID), zap.String("phase", "read-category"), zap.Error(err))
		return "", false
	}

	changed := false
	if cat.IsActive {
		if err := svc.Catalog.SetCategoryActivation(categoryID, false, true); err != nil {
			logger.Error("cascade aborted for category",
				zap.String("categoryId", categoryID), zap.String("phase", "deactivate-category"), zap.Error(err))
			return "", false
		}
		changed = true
	}

	services, err := svc.Catalog.GetServicesByMasterCategory(w.CompanyID, cat.MasterCategoryID)
	if err != nil {
		logger.Error("cascade aborted for category",
			zap.String("categoryId", categoryID), zap.String("phase", "load-services"), zap.Error(err))
		return cat.Name, changed
	}
	var touched []models.Service
	for _, s := range services {
		if !s.IsActive {
			continue
		}
		if err := svc.Catalog.SetServiceActivation(s.ID, false, true); err != nil {
			logger.Error("cascade aborted for category",
				zap.String("categoryId", categoryID), zap.String("serviceId", s.ID),
				zap.String("phase", "deactivate-service"), zap.Error(err))
			return cat.Name, true
		}
		changed = true
		touched = append(touched, s)
	}

	if changed {
		svc.syncMirror(cat, touched, categoryID)
	}
	return cat.Name, changed
}

// reactivateCategory runs the enable branch for one category: the persisted
// state is re-read, anything inactive comes back, and the mirror becomes
// visible again.
func (svc *DefaultWorkerService) reactivateCategory(w *models.Worker, categoryID string) (string, bool) {
	logger := svc.logger()

	cat, err := svc.Catalog.GetCategoryByID(categoryID)
	if err != nil {
		logger.Error("cascade aborted for category",
			zap.String("categoryId", categoryID), zap.String("phase", "read-category"), zap.Error(err))
		return "", false
	}

	changed := false
	if !cat.IsActive {
		if err := svc.Catalog.SetCategoryActivation(categoryID, true, false); err != nil {
			logger.Error("cascade aborted for category",
				zap.String("categoryId", categoryID), zap.String("phase", "reactivate-category"), zap.Error(err))
			return "", false
		}
		changed = true
	}

	services, err := svc.Catalog.GetServicesByMasterCategory(w.CompanyID, cat.MasterCategoryID)
	if err != nil {
		logger.Error("cascade aborted for category",
			zap.String("categoryId", categoryID), zap.String("phase", "load-services"), zap.Error(err))
		return cat.Name, changed
	}
	var touched []models.Service
	for _, s := range services {
		if s.IsActive {
			continue
		}
		if err := svc.Catalog.SetServiceActivation(s.ID, true, false); err != nil {
			logger.Error("cascade aborted for category",
				zap.String("categoryId", categoryID), zap.String("serviceId", s.ID),
				zap.String("phase", "reactivate-service"), zap.Error(err))
			return cat.Name, true
		}
		changed = true
		touched = append(touched, s)
	}

	if changed {
		svc.syncMirror(cat, touched, categoryID)
	}
	return cat.Name, changed
}

// syncMirror re-derives public visibility for the master category and the
// touched master services: visible exactly when at least one company anywhere
// still has the entry active. Counts re-query across companies, not just this
// one.
func (svc *DefaultWorkerService) syncMirror(cat *models.Category, touched []models.Service, categoryID string) {
	logger := svc.logger()

	count, err := svc.Catalog.CountActiveByMasterCategory(cat.MasterCategoryID)
	if err != nil {
		logger.Error("mirror sync failed",
			zap.String("categoryId", categoryID), zap.String("phase", "count-mirror-category"), zap.Error(err))
		return
	}
	if err := svc.Catalog.SetMirrorVisibility(models.MirrorKindCategory, cat.MasterCategoryID, count > 0); err != nil {
		logger.Error("mirror sync failed",
			zap.String("categoryId", categoryID), zap.String("phase", "sync-mirror-category"), zap.Error(err))
		return
	}

	for _, s := range touched {
		count, err := svc.Catalog.CountActiveByMasterService(s.MasterServiceID)
		if err != nil {
			logger.Error("mirror sync failed",
				zap.String("categoryId", categoryID), zap.String("serviceId", s.ID),
				zap.String("phase", "count-mirror-service"), zap.Error(err))
			return
		}
		if err := svc.Catalog.SetMirrorVisibility(models.MirrorKindService, s.MasterServiceID, count > 0); err != nil {
			logger.Error("mirror sync failed",
				zap.String("categoryId", categoryID), zap.String("serviceId", s.ID),
				zap.String("phase", "sync-mirror-service"), zap.Error(err))
			return
		}
	}
}
