package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/importer"
)

// Import ingests a multipart upload of fuel workbooks.
// POST /api/imports  (fields: batch_id, creator; files under "files")
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}
	if len(files) > h.upload.MaxFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many files: %d (max %d)", len(files), h.upload.MaxFiles),
		})
		return
	}

	maxSize := h.upload.MaxFileSizeBytes()
	var uploads []importer.UploadedFile
	for _, fh := range files {
		if fh.Size > maxSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("file %q exceeds the %d MB limit", fh.Filename, h.upload.MaxFileSizeMB),
			})
			return
		}
		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to open %q", fh.Filename)})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read %q", fh.Filename)})
			return
		}
		uploads = append(uploads, importer.UploadedFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	batchID := c.PostForm("batch_id")
	creator := c.PostForm("creator")

	result, err := h.coordinator.ProcessUpload(batchID, creator, uploads)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListBatches lists recent import batches.
// GET /api/imports/batches
func (h *Handler) ListBatches(c *gin.Context) {
	batches, err := h.store.ListBatches(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// ListBatchFiles lists the files of one batch with their statuses.
// GET /api/imports/batches/:id/files
func (h *Handler) ListBatchFiles(c *gin.Context) {
	files, err := h.store.ListBatchFiles(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}
