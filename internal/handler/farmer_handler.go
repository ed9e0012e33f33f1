package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// FarmerHandler handles farmer registry HTTP requests
type FarmerHandler struct {
	farmerService service.FarmerService
}

// NewFarmerHandler creates a new FarmerHandler
func NewFarmerHandler(farmerService service.FarmerService) *FarmerHandler {
	return &FarmerHandler{farmerService: farmerService}
}

// Create handles POST /farmers
func (h *FarmerHandler) Create(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.CreateFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	farmer, err := h.farmerService.Create(c.Request.Context(), org, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(farmer))
}

// GetByID handles GET /farmers/:id
func (h *FarmerHandler) GetByID(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	farmer, err := h.farmerService.GetByID(c.Request.Context(), org, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(farmer))
}

// List handles GET /farmers
func (h *FarmerHandler) List(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var query dto.ListFarmersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	farmers, total, err := h.farmerService.List(c.Request.Context(), org, &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(farmers, query.Page, query.PageSize, int64(total)))
}

// Update handles PATCH /farmers/:id
func (h *FarmerHandler) Update(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	farmer, err := h.farmerService.Update(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(farmer))
}

// Delete handles DELETE /farmers/:id
func (h *FarmerHandler) Delete(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.farmerService.Delete(c.Request.Context(), org, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Stats handles GET /farmers/stats
func (h *FarmerHandler) Stats(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	stats, err := h.farmerService.Stats(c.Request.Context(), org)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}
