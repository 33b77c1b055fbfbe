package handlers

import (
	"errors"
	"net/http"

	riderRepo "servana/database/repository/rider"
	"servana/models"
	"servana/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RiderHandler exposes delivery rider management on the admin side.
type RiderHandler struct {
	Repo    riderRepo.RiderRepository
	Storage storage.StorageService
}

// NewRiderHandler creates a RiderHandler.
func NewRiderHandler(repo riderRepo.RiderRepository, store storage.StorageService) *RiderHandler {
	return &RiderHandler{Repo: repo, Storage: store}
}

// riderInput binds from JSON or multipart form; the photo travels as a
// separate multipart file part named "image".
type riderInput struct {
	Name         string `form:"name" json:"name" binding:"required"`
	Phone        string `form:"phone" json:"phone" binding:"required"`
	Email        string `form:"email" json:"email"`
	AadharNumber string `form:"aadharNumber" json:"aadharNumber"`
	VehicleNo    string `form:"vehicleNo" json:"vehicleNo"`
}

// RegisterHandler registers a new rider.
func (h *RiderHandler) RegisterHandler(c *gin.Context) {
	var input riderInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rider := models.Rider{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		AadharNumber: input.AadharNumber,
		VehicleNo:    input.VehicleNo,
		IsActive:     true,
	}
	if err := rider.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if photoID, uploaded, err := savePhoto(c, h.Storage, "riders"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed, try again"})
		return
	} else if uploaded {
		rider.PhotoID = photoID
	}

	if err := h.Repo.Create(&rider); err != nil {
		respondRiderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rider": rider})
}

// UpdateHandler rewrites an existing rider.
func (h *RiderHandler) UpdateHandler(c *gin.Context) {
	var input riderInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rider, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		respondRiderError(c, err)
		return
	}
	rider.Name = input.Name
	rider.Phone = input.Phone
	rider.Email = input.Email
	rider.AadharNumber = input.AadharNumber
	rider.VehicleNo = input.VehicleNo
	if err := rider.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if photoID, uploaded, err := savePhoto(c, h.Storage, "riders"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed, try again"})
		return
	} else if uploaded {
		rider.PhotoID = photoID
	}

	if err := h.Repo.Update(rider); err != nil {
		respondRiderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rider": rider})
}

// ListHandler returns every registered rider.
func (h *RiderHandler) ListHandler(c *gin.Context) {
	riders, err := h.Repo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load riders, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"riders": riders})
}

// DeleteHandler removes a rider.
func (h *RiderHandler) DeleteHandler(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		respondRiderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetActiveHandler toggles a rider's availability.
func (h *RiderHandler) SetActiveHandler(c *gin.Context) {
	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Repo.SetActive(c.Param("id"), *input.Active); err != nil {
		respondRiderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func respondRiderError(c *gin.Context, err error) {
	if errors.Is(err, riderRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rider not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
}
