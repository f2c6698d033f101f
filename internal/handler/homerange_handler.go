package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/movetrace/homerange-backend-go/internal/homerange"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/service"
	"github.com/movetrace/homerange-backend-go/pkg/response"
)

// HomeRangeHandler handles HTTP requests for home-range estimation
type HomeRangeHandler struct {
	homeRangeService *service.HomeRangeService
}

// NewHomeRangeHandler creates a new home-range handler
func NewHomeRangeHandler(homeRangeService *service.HomeRangeService) *HomeRangeHandler {
	return &HomeRangeHandler{homeRangeService: homeRangeService}
}

// EstimateMCP handles POST /api/v1/homerange/mcp
func (h *HomeRangeHandler) EstimateMCP(c *gin.Context) {
	var req models.HomeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid MCP request")
		return
	}

	estimates, err := h.homeRangeService.EstimateMCP(req)
	if err != nil {
		respondEstimatorError(c, err)
		return
	}

	response.Success(c, estimates)
}

// EstimateKDE handles POST /api/v1/homerange/kde
func (h *HomeRangeHandler) EstimateKDE(c *gin.Context) {
	var req models.HomeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid KDE request")
		return
	}

	estimates, err := h.homeRangeService.EstimateKDE(req)
	if err != nil {
		respondEstimatorError(c, err)
		return
	}

	response.Success(c, estimates)
}

// ListEstimates handles GET /api/v1/homerange/:groupId
func (h *HomeRangeHandler) ListEstimates(c *gin.Context) {
	estimates, err := h.homeRangeService.ListEstimates(c.Param("groupId"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  estimates,
		"count": len(estimates),
	})
}

// respondEstimatorError maps estimator failures onto status codes:
// degenerate input is the caller's problem, everything else is ours
func respondEstimatorError(c *gin.Context, err error) {
	if errors.Is(err, homerange.ErrInsufficientData) {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.InternalError(c, err.Error())
}
