package handlers

import (
	"errors"
	"net/http"

	workerRepo "servana/database/repository/worker"
	"servana/middleware"
	"servana/models"
	"servana/services/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkerHandler exposes technician management to the company dashboard.
type WorkerHandler struct {
	Svc worker.WorkerService
}

// NewWorkerHandler creates a WorkerHandler.
func NewWorkerHandler(svc worker.WorkerService) *WorkerHandler {
	return &WorkerHandler{Svc: svc}
}

// RegisterHandler registers a new worker for the company.
func (h *WorkerHandler) RegisterHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input models.Worker
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = uuid.New().String()
	input.CompanyID = companyID

	if err := h.Svc.Register(&input); err != nil {
		respondWorkerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"worker": input})
}

// UpdateHandler rewrites an existing worker.
func (h *WorkerHandler) UpdateHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input models.Worker
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = c.Param("id")
	input.CompanyID = companyID

	if err := h.Svc.Update(&input); err != nil {
		respondWorkerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": input})
}

// ListHandler returns the company's workers.
func (h *WorkerHandler) ListHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	workers, err := h.Svc.GetByCompany(companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load workers, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// DeleteHandler removes a worker.
func (h *WorkerHandler) DeleteHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	if err := h.Svc.Delete(companyID, c.Param("id")); err != nil {
		respondWorkerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetActiveHandler toggles a worker and reports which categories the cascade
// touched, so the dashboard can show a confirmation. An empty list means
// nothing needed to change.
func (h *WorkerHandler) SetActiveHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	affected, err := h.Svc.SetActive(companyID, c.Param("id"), *input.Active)
	if err != nil {
		respondWorkerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affectedCategories": affected})
}

func respondWorkerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workerRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
	case errors.Is(err, worker.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
	}
}
