package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/movetrace/homerange-backend-go/internal/homerange"
	"github.com/movetrace/homerange-backend-go/internal/service"
	"github.com/movetrace/homerange-backend-go/pkg/response"
)

// MapHandler handles HTTP requests for map rendering
type MapHandler struct {
	mapService *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(mapService *service.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

// Render handles POST /api/v1/maps
func (h *MapHandler) Render(c *gin.Context) {
	var req service.MapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid map request")
		return
	}

	result, err := h.mapService.Render(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, homerange.ErrInsufficientData) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
