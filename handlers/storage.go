package handlers

import (
	"net/http"
	"time"

	"servana/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler exposes direct file operations against the object store.
type StorageHandler struct {
	Storage storage.StorageService
}

// NewStorageHandler creates a StorageHandler.
func NewStorageHandler(store storage.StorageService) *StorageHandler {
	return &StorageHandler{Storage: store}
}

// UploadFileHandler stores one multipart file and returns its public id.
// The optional "folder" form field namespaces the upload.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	folder := c.DefaultPostForm("folder", "uploads")

	publicID, uploaded, err := savePhoto(c, h.Storage, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, try again"})
		return
	}
	if !uploaded {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file attached"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"publicId": publicID})
}

// GetDownloadURLHandler returns a temporary URL for a stored file.
func (h *StorageHandler) GetDownloadURLHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}
	resourceType := c.DefaultQuery("resourceType", "image")

	url, err := h.Storage.GetDownloadURL(c.Request.Context(), resourceType, publicID, time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve download URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteFileHandler removes a stored file.
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}

	if err := h.Storage.DeleteFile(c.Request.Context(), publicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
