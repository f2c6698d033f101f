package service

import (
	"fmt"
	"math"

	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/repository"
	"github.com/movetrace/homerange-backend-go/internal/spatial"
)

// TrackService handles business logic for track points
type TrackService struct {
	trackRepo *repository.TrackRepository
}

// NewTrackService creates a new track service
func NewTrackService(trackRepo *repository.TrackRepository) *TrackService {
	return &TrackService{trackRepo: trackRepo}
}

// GetTrackPoints retrieves track points with filtering and pagination
func (s *TrackService) GetTrackPoints(filter models.TrackPointFilter) (*models.TrackPointsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	points, total, err := s.trackRepo.GetTrackPoints(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get track points: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &models.TrackPointsResponse{
		Data:       points,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListGroups returns the group ids present in storage
func (s *TrackService) ListGroups() ([]string, error) {
	groups, err := s.trackRepo.ListGroups()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group's points
func (s *TrackService) DeleteGroup(groupID string) (int64, error) {
	removed, err := s.trackRepo.DeleteGroup(groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete group: %w", err)
	}
	return removed, nil
}

// GroupStats summarizes one group's movement
type GroupStats struct {
	GroupID          string  `json:"groupId"`
	PointCount       int     `json:"pointCount"`
	PathLengthM      float64 `json:"pathLengthM"`
	Tortuosity       float64 `json:"tortuosity"`
	RadiusOfGyration float64 `json:"radiusOfGyrationM"`
	MinLat           float64 `json:"minLat"`
	MinLon           float64 `json:"minLon"`
	MaxLat           float64 `json:"maxLat"`
	MaxLon           float64 `json:"maxLon"`
}

// GetGroupStats computes movement statistics for one group
func (s *TrackService) GetGroupStats(groupID string) (*GroupStats, error) {
	points, err := s.trackRepo.GetGroupPoints(groupID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get group points: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("group %s has no points", groupID)
	}

	geo := make([]spatial.Point, len(points))
	for i, p := range points {
		geo[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}

	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(geo)

	return &GroupStats{
		GroupID:          groupID,
		PointCount:       len(points),
		PathLengthM:      spatial.PathLength(geo),
		Tortuosity:       spatial.Tortuosity(geo),
		RadiusOfGyration: spatial.RadiusOfGyration(geo),
		MinLat:           minLat,
		MinLon:           minLon,
		MaxLat:           maxLat,
		MaxLon:           maxLon,
	}, nil
}
