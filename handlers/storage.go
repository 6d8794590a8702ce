package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"smartplates/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler exposes image upload and download-URL endpoints.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted buckets for image uploads.
var allowedBuckets = map[string]bool{
	"recipes":  true,
	"profiles": true,
	"pantry":   true,
}

// UploadImageHandler handles POST /storage/upload/:bucket with a multipart "file"
// field. The file is staged to a temp path and pushed to the CDN.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'recipes', 'profiles' and 'pantry'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, "images/"+bucket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "detail": err.Error()})
		return
	}

	url, err := h.StorageSvc.GetDownloadURL(c, "image", publicID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build download URL", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicId": publicID, "url": url})
}

// DeleteImageHandler handles DELETE /storage with a JSON publicId payload.
func (h *StorageHandler) DeleteImageHandler(c *gin.Context) {
	var req struct {
		PublicID string `json:"publicId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.StorageSvc.DeleteFile(c, req.PublicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

// SecureURLHandler handles GET /storage/secure-url?publicId=&type=image.
// The returned URL expires after ten minutes.
func (h *StorageHandler) SecureURLHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}
	resourceType := c.DefaultQuery("type", "image")
	url, err := h.StorageSvc.GetSecureDownloadURL(c, resourceType, publicID, 10*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build secure URL", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
