package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/internal/client"
	"github.com/user624-47/farmflow-sub000/internal/dto"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/response"
)

// GeocodeHandler handles reverse geocoding HTTP requests
type GeocodeHandler struct {
	geocodeService service.GeocodeService
}

// NewGeocodeHandler creates a new GeocodeHandler
func NewGeocodeHandler(geocodeService service.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{geocodeService: geocodeService}
}

// Reverse handles GET /geocode/reverse?lat=..&lng=..
func (h *GeocodeHandler) Reverse(c *gin.Context) {
	if _, ok := orgScope(c); !ok {
		return
	}

	var query dto.ReverseGeocodeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Valid lat and lng query parameters are required"))
		return
	}

	result, err := h.geocodeService.Reverse(c.Request.Context(), query.Latitude, query.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrMissingAccessToken):
			c.JSON(http.StatusInternalServerError, response.Error(response.ErrCodeMissingCredential,
				"Geocoding provider credential is not configured"))
		case errors.Is(err, client.ErrNoResults):
			c.JSON(http.StatusNotFound, response.NotFound("No place found for the given coordinates"))
		default:
			c.JSON(http.StatusBadGateway, response.Error(response.ErrCodeGeocodingFailed,
				"Reverse geocoding failed"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
