package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/movetrace/homerange-backend-go/internal/gpx"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/service"
	"github.com/movetrace/homerange-backend-go/pkg/response"
)

// TrackHandler handles HTTP requests for track points and imports
type TrackHandler struct {
	trackService  *service.TrackService
	importService *service.ImportService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService, importService *service.ImportService) *TrackHandler {
	return &TrackHandler{
		trackService:  trackService,
		importService: importService,
	}
}

// GetTrackPoints handles GET /api/v1/tracks/points
func (h *TrackHandler) GetTrackPoints(c *gin.Context) {
	var filter models.TrackPointFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.trackService.GetTrackPoints(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// ListGroups handles GET /api/v1/tracks/groups
func (h *TrackHandler) ListGroups(c *gin.Context) {
	groups, err := h.trackService.ListGroups()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"groups": groups,
		"count":  len(groups),
	})
}

// GetGroupStats handles GET /api/v1/tracks/groups/:groupId/stats
func (h *TrackHandler) GetGroupStats(c *gin.Context) {
	stats, err := h.trackService.GetGroupStats(c.Param("groupId"))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, stats)
}

// DeleteGroup handles DELETE /api/v1/tracks/groups/:groupId
func (h *TrackHandler) DeleteGroup(c *gin.Context) {
	removed, err := h.trackService.DeleteGroup(c.Param("groupId"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"removed": removed})
}

// ImportRequest is the body of POST /api/v1/tracks/import
type ImportRequest struct {
	Path    string `json:"path" binding:"required"`
	Layer   string `json:"layer"`
	GroupID string `json:"groupId" binding:"required"`
}

// Import handles POST /api/v1/tracks/import
func (h *TrackHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid import request")
		return
	}

	layer := gpx.Layer(req.Layer)
	if req.Layer == "" {
		layer = gpx.LayerWaypoints
	}

	result, err := h.importService.ImportFile(req.Path, layer, req.GroupID)
	if err != nil {
		if errors.Is(err, gpx.ErrLayerNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
