package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// ExtensionHandler handles extension activity HTTP requests
type ExtensionHandler struct {
	extensionSvc service.ExtensionSvc
}

// NewExtensionHandler creates a new ExtensionHandler
func NewExtensionHandler(extensionSvc service.ExtensionSvc) *ExtensionHandler {
	return &ExtensionHandler{extensionSvc: extensionSvc}
}

// Create handles POST /extension-services
func (h *ExtensionHandler) Create(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.CreateExtensionServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	svc, err := h.extensionSvc.Create(c.Request.Context(), org, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(svc))
}

// GetByID handles GET /extension-services/:id
func (h *ExtensionHandler) GetByID(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	svc, err := h.extensionSvc.GetByID(c.Request.Context(), org, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(svc))
}

// List handles GET /extension-services
func (h *ExtensionHandler) List(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var query dto.ListExtensionServicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	items, total, err := h.extensionSvc.List(c.Request.Context(), org, &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(items, query.Page, query.PageSize, int64(total)))
}

// Update handles PATCH /extension-services/:id
func (h *ExtensionHandler) Update(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateExtensionServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	svc, err := h.extensionSvc.Update(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(svc))
}

// Delete handles DELETE /extension-services/:id
func (h *ExtensionHandler) Delete(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.extensionSvc.Delete(c.Request.Context(), org, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Stats handles GET /extension-services/stats
func (h *ExtensionHandler) Stats(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	stats, err := h.extensionSvc.Stats(c.Request.Context(), org)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}
