package handlers

import (
	"errors"
	"net/http"

	catalogRepo "servana/database/repository/catalog"
	"servana/middleware"
	"servana/models"
	"servana/services/catalog"
	"servana/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler exposes company category and service management.
type CatalogHandler struct {
	Svc     catalog.CatalogService
	Storage storage.StorageService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService, store storage.StorageService) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Storage: store}
}

// categoryInput binds from JSON or multipart form; the image travels as a
// separate multipart file part named "image".
type categoryInput struct {
	Name             string `form:"name" json:"name" binding:"required"`
	MasterCategoryID string `form:"masterCategoryId" json:"masterCategoryId"`
}

// CreateCategoryHandler registers a new category, optionally with an image
// uploaded in the same multipart request.
func (h *CatalogHandler) CreateCategoryHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input categoryInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	category := models.Category{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		MasterCategoryID: input.MasterCategoryID,
		Name:             input.Name,
		IsActive:         true,
	}
	if imageID, uploaded, err := savePhoto(c, h.Storage, "categories"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed, try again"})
		return
	} else if uploaded {
		category.ImageID = imageID
	}

	if err := h.Svc.CreateCategory(&category); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategoryHandler rewrites an existing category.
func (h *CatalogHandler) UpdateCategoryHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input categoryInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	current, err := h.Svc.GetCategoriesByCompany(companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories, try again"})
		return
	}
	var category *models.Category
	for i := range current {
		if current[i].ID == c.Param("id") {
			category = &current[i]
			break
		}
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog entry not found"})
		return
	}

	category.Name = input.Name
	if input.MasterCategoryID != "" {
		category.MasterCategoryID = input.MasterCategoryID
	}
	if imageID, uploaded, err := savePhoto(c, h.Storage, "categories"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed, try again"})
		return
	} else if uploaded {
		category.ImageID = imageID
	}

	if err := h.Svc.UpdateCategory(category); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategoryHandler removes a category.
func (h *CatalogHandler) DeleteCategoryHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	if err := h.Svc.DeleteCategory(companyID, c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListCategoriesHandler returns the company's categories.
func (h *CatalogHandler) ListCategoriesHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	categories, err := h.Svc.GetCategoriesByCompany(companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// SetCategoryActiveHandler applies a manual activation toggle.
func (h *CatalogHandler) SetCategoryActiveHandler(c *gin.Context) {
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

	if err := h.Svc.SetCategoryActive(companyID, c.Param("id"), *input.Active); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// CreateServiceHandler registers a new service under a category.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = uuid.New().String()
	input.CompanyID = companyID
	input.IsActive = true

	if err := h.Svc.CreateService(&input); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": input})
}

// UpdateServiceHandler rewrites an existing service.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = c.Param("id")
	input.CompanyID = companyID

	if err := h.Svc.UpdateService(&input); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": input})
}

// DeleteServiceHandler removes a service.
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	if err := h.Svc.DeleteService(companyID, c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListServicesHandler returns the company's services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	services, err := h.Svc.GetServicesByCompany(companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load services, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// SetServiceActiveHandler applies a manual activation toggle to one service.
func (h *CatalogHandler) SetServiceActiveHandler(c *gin.Context) {
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

	if err := h.Svc.SetServiceActive(companyID, c.Param("id"), *input.Active); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog entry not found"})
	case errors.Is(err, catalog.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
	}
}
