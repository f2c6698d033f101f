package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/movetrace/homerange-backend-go/internal/fractal"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/service"
	"github.com/movetrace/homerange-backend-go/pkg/response"
)

// FractalHandler handles HTTP requests for fractal-dimension analysis
type FractalHandler struct {
	fractalService *service.FractalService
}

// NewFractalHandler creates a new fractal handler
func NewFractalHandler(fractalService *service.FractalService) *FractalHandler {
	return &FractalHandler{fractalService: fractalService}
}

// Estimate handles POST /api/v1/fractal
func (h *FractalHandler) Estimate(c *gin.Context) {
	var req models.FractalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid fractal request")
		return
	}

	result, err := h.fractalService.Estimate(req)
	if err != nil {
		if errors.Is(err, fractal.ErrInsufficientSamples) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
