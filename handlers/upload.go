package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"servana/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// savePhoto stores an optional "image" multipart file through the storage
// service. The second return reports whether a file was present at all.
func savePhoto(c *gin.Context, store storage.StorageService, folder string) (string, bool, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", false, nil // no file attached
	}
	if store == nil {
		return "", false, fmt.Errorf("storage not configured")
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		return "", false, fmt.Errorf("failed to buffer upload: %w", err)
	}
	defer os.Remove(tempPath)

	publicID, err := store.UploadFile(c.Request.Context(), tempPath, folder)
	if err != nil {
		return "", false, fmt.Errorf("failed to upload image: %w", err)
	}
	return publicID, true, nil
}
