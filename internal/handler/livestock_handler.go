package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// LivestockHandler handles livestock HTTP requests, including the embedded
// health, breeding and feeding record collections
type LivestockHandler struct {
	livestockService service.LivestockService
}

// NewLivestockHandler creates a new LivestockHandler
func NewLivestockHandler(livestockService service.LivestockService) *LivestockHandler {
	return &LivestockHandler{livestockService: livestockService}
}

// Create handles POST /livestock
func (h *LivestockHandler) Create(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.CreateLivestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	animal, err := h.livestockService.Create(c.Request.Context(), org, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(animal))
}

// GetByID handles GET /livestock/:id
func (h *LivestockHandler) GetByID(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	animal, err := h.livestockService.GetByID(c.Request.Context(), org, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(animal))
}

// List handles GET /livestock
func (h *LivestockHandler) List(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var query dto.ListLivestockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	animals, total, err := h.livestockService.List(c.Request.Context(), org, &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(animals, query.Page, query.PageSize, int64(total)))
}

// Update handles PATCH /livestock/:id
func (h *LivestockHandler) Update(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateLivestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	animal, err := h.livestockService.Update(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(animal))
}

// Delete handles DELETE /livestock/:id
func (h *LivestockHandler) Delete(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.livestockService.Delete(c.Request.Context(), org, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Stats handles GET /livestock/stats
func (h *LivestockHandler) Stats(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	stats, err := h.livestockService.Stats(c.Request.Context(), org)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}

// AddHealthRecord handles POST /livestock/:id/health-records
func (h *LivestockHandler) AddHealthRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.AddHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	record, err := h.livestockService.AddHealthRecord(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(record))
}

// UpdateHealthRecord handles PATCH /livestock/:id/health-records/:recordId
func (h *LivestockHandler) UpdateHealthRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	record, err := h.livestockService.UpdateHealthRecord(c.Request.Context(), org, c.Param("id"), c.Param("recordId"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(record))
}

// RemoveHealthRecord handles DELETE /livestock/:id/health-records/:recordId
func (h *LivestockHandler) RemoveHealthRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.livestockService.RemoveHealthRecord(c.Request.Context(), org, c.Param("id"), c.Param("recordId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// AddBreedingRecord handles POST /livestock/:id/breeding-records
func (h *LivestockHandler) AddBreedingRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.AddBreedingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	record, err := h.livestockService.AddBreedingRecord(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(record))
}

// UpdateBreedingRecord handles PATCH /livestock/:id/breeding-records/:recordId
func (h *LivestockHandler) UpdateBreedingRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateBreedingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	record, err := h.livestockService.UpdateBreedingRecord(c.Request.Context(), org, c.Param("id"), c.Param("recordId"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(record))
}

// RemoveBreedingRecord handles DELETE /livestock/:id/breeding-records/:recordId
func (h *LivestockHandler) RemoveBreedingRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.livestockService.RemoveBreedingRecord(c.Request.Context(), org, c.Param("id"), c.Param("recordId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// AddFeedingRecord handles POST /livestock/:id/feeding-records
func (h *LivestockHandler) AddFeedingRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.AddFeedingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	record, err := h.livestockService.AddFeedingRecord(c.Request.Context(), org, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(record))
}

// UpdateFeedingRecord handles PATCH /livestock/:id/feeding-records/:recordId
func (h *LivestockHandler) UpdateFeedingRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	var req dto.UpdateFeedingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	record, err := h.livestockService.UpdateFeedingRecord(c.Request.Context(), org, c.Param("id"), c.Param("recordId"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(record))
}

// RemoveFeedingRecord handles DELETE /livestock/:id/feeding-records/:recordId
func (h *LivestockHandler) RemoveFeedingRecord(c *gin.Context) {
	org, ok := orgScope(c)
	if !ok {
		return
	}

	if err := h.livestockService.RemoveFeedingRecord(c.Request.Context(), org, c.Param("id"), c.Param("recordId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}
