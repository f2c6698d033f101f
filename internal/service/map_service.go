package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/render"
	"github.com/movetrace/homerange-backend-go/internal/repository"
)

// MapService composes basemap images with points and home-range overlays
type MapService struct {
	trackRepo *repository.TrackRepository
	homeRange *HomeRangeService
	mapper    *render.Mapper
	outputDir string
}

// NewMapService creates a new map service
func NewMapService(trackRepo *repository.TrackRepository, homeRange *HomeRangeService, mapper *render.Mapper, outputDir string) *MapService {
	return &MapService{
		trackRepo: trackRepo,
		homeRange: homeRange,
		mapper:    mapper,
		outputDir: outputDir,
	}
}

// MapRequest describes one map rendering call
type MapRequest struct {
	GroupIDs  []string        `json:"groupIds" form:"groupIds"`
	Estimator string          `json:"estimator,omitempty" form:"estimator"` // "mcp", "kde" or "" for points only
	Percent   float64         `json:"percent,omitempty" form:"percent"`
	Unit      models.AreaUnit `json:"unit,omitempty" form:"unit"`
	Bandwidth string          `json:"bandwidth,omitempty" form:"bandwidth"`
}

// MapResult points at the rendered image
type MapResult struct {
	Path      string                     `json:"path"`
	Groups    []string                   `json:"groups"`
	Estimates []models.HomeRangeEstimate `json:"estimates,omitempty"`
}

// Render draws the requested groups (and optionally their home-range
// polygons) onto one basemap image and writes it to the output directory
func (s *MapService) Render(ctx context.Context, req MapRequest) (*MapResult, error) {
	if len(req.GroupIDs) == 0 {
		return nil, fmt.Errorf("map: at least one group id is required")
	}

	var estimates []models.HomeRangeEstimate
	switch req.Estimator {
	case "":
	case models.EstimatorMCP:
		var err error
		estimates, err = s.homeRange.EstimateMCP(models.HomeRangeRequest{
			GroupIDs: req.GroupIDs, Percent: req.Percent, Unit: req.Unit,
		})
		if err != nil {
			return nil, err
		}
	case models.EstimatorKDE:
		var err error
		estimates, err = s.homeRange.EstimateKDE(models.HomeRangeRequest{
			GroupIDs: req.GroupIDs, Percent: req.Percent, Unit: req.Unit, Bandwidth: req.Bandwidth,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("map: unknown estimator %q", req.Estimator)
	}

	polygons := make(map[string][][2]float64, len(estimates))
	for _, est := range estimates {
		polygons[est.GroupID] = est.VerticesGeo
	}

	var layers []render.GroupLayer
	for _, groupID := range req.GroupIDs {
		records, err := s.trackRepo.GetGroupPoints(groupID, 0, 0)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("group %s has no points", groupID)
		}

		layer := render.GroupLayer{GroupID: groupID, Polygon: polygons[groupID]}
		for _, rec := range records {
			layer.Points = append(layer.Points, [2]float64{rec.Longitude, rec.Latitude})
		}
		layers = append(layers, layer)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("map: failed to create output dir: %w", err)
	}
	path := filepath.Join(s.outputDir, fmt.Sprintf("map_%d.png", time.Now().Unix()))

	if err := s.mapper.Render(ctx, layers, render.DefaultOptions, path); err != nil {
		return nil, err
	}

	return &MapResult{Path: path, Groups: req.GroupIDs, Estimates: estimates}, nil
}
