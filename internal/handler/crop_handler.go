package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// CropHandler handles crop record HTTP requests
type CropHandler struct {
	cropService service.CropService
}

// NewCropHandler creates a new CropHandler
func NewCropHandler(cropService service.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// Create handles POST /crops
func (h *CropHandler) Create(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.CreateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	crop, err := h.cropService.Create(c.Request.Context(), org, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(crop))
}

// GetByID handles GET /crops/:id
func (h *CropHandler) GetByID(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	crop, err := h.cropService.GetByID(c.Request.Context(), org, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(crop))
}

// List handles GET /crops
func (h *CropHandler) List(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var query dto.ListCropsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	crops, total, err := h.cropService.List(c.Request.Context(), org, &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(crops, query.Page, query.PageSize, int64(total)))
}

// Update handles PATCH /crops/:id
func (h *CropHandler) Update(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	crop, err := h.cropService.Update(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(crop))
}

// Delete handles DELETE /crops/:id
func (h *CropHandler) Delete(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.cropService.Delete(c.Request.Context(), org, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Stats handles GET /crops/stats
func (h *CropHandler) Stats(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	stats, err := h.cropService.Stats(c.Request.Context(), org)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}
