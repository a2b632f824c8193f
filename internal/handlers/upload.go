package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"onemsu-server/internal/storage"
)

// UploadHandler hands out blob store upload URLs.
type UploadHandler struct {
	store storage.BlobStore
}

// NewUploadHandler builds an UploadHandler. A nil store means uploads are
// not configured.
func NewUploadHandler(store storage.BlobStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// CreateUpload returns a presigned upload URL and the URL the object will
// be readable from. Failure surfaces as an upload error with no partial
// state.
func (h *UploadHandler) CreateUpload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}

	var req struct {
		FileName string `json:"file_name" binding:"required"`
		FileType string `json:"file_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploadURL, objectURL, err := h.store.PresignUpload(c.Request.Context(), req.FileName, req.FileType)
	if err != nil {
		log.Printf("upload presign failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload_url": uploadURL, "file_url": objectURL})
}
