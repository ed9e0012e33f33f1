package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// FinanceHandler handles financial service HTTP requests
type FinanceHandler struct {
	financeService service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// Create handles POST /financial-services
func (h *FinanceHandler) Create(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.CreateFinancialServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	svc, err := h.financeService.Create(c.Request.Context(), org, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(svc))
}

// GetByID handles GET /financial-services/:id
func (h *FinanceHandler) GetByID(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	svc, err := h.financeService.GetByID(c.Request.Context(), org, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(svc))
}

// List handles GET /financial-services
func (h *FinanceHandler) List(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var query dto.ListFinancialServicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	items, total, err := h.financeService.List(c.Request.Context(), org, &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(items, query.Page, query.PageSize, int64(total)))
}

// Update handles PATCH /financial-services/:id
func (h *FinanceHandler) Update(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateFinancialServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	svc, err := h.financeService.Update(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(svc))
}

// Delete handles DELETE /financial-services/:id
func (h *FinanceHandler) Delete(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.financeService.Delete(c.Request.Context(), org, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Stats handles GET /financial-services/stats
func (h *FinanceHandler) Stats(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	stats, err := h.financeService.Stats(c.Request.Context(), org)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}
