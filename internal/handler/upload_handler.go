package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// UploadHandler handles image upload HTTP requests
type UploadHandler struct {
	uploadService service.UploadService
	maxBytes      int64
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService service.UploadService, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = service.DefaultUploadMaxBytes
	}
	return &UploadHandler{uploadService: uploadService, maxBytes: maxBytes}
}

// UploadImage handles POST /uploads/images with a multipart "image" part
func (h *UploadHandler) UploadImage(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	// cap the whole request body before multipart parsing buffers it
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+64*1024)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("A multipart \"image\" file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	result, err := h.uploadService.UploadImage(c.Request.Context(), org, contentType, header.Size, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}
