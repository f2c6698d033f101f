package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/movetrace/homerange-backend-go/internal/gpx"
	"github.com/movetrace/homerange-backend-go/internal/metrics"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/projection"
	"github.com/movetrace/homerange-backend-go/internal/repository"
	"github.com/movetrace/homerange-backend-go/internal/spatial"
)

// ImportService loads GPX files into storage, deriving per-step fields and
// projected coordinates on the way in
type ImportService struct {
	trackRepo *repository.TrackRepository
	taskRepo  *repository.TaskRepository
	transform *projection.Transform
}

// NewImportService creates a new import service
func NewImportService(trackRepo *repository.TrackRepository, taskRepo *repository.TaskRepository, transform *projection.Transform) *ImportService {
	return &ImportService{
		trackRepo: trackRepo,
		taskRepo:  taskRepo,
		transform: transform,
	}
}

// ImportResult summarizes one import run
type ImportResult struct {
	GroupID    string `json:"groupId"`
	PointCount int    `json:"pointCount"`
	Layer      string `json:"layer"`
}

// ImportFile parses one GPX file layer and stores its points under groupID.
// The run is recorded as an analysis task.
func (s *ImportService) ImportFile(path string, layer gpx.Layer, groupID string) (*ImportResult, error) {
	params, _ := json.Marshal(map[string]string{"path": path, "layer": string(layer), "group": groupID})
	taskID, err := s.taskRepo.Create(models.TaskTypeImport, string(params))
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.MarkRunning(taskID); err != nil {
		return nil, err
	}

	result, err := s.importFile(path, layer, groupID)
	if err != nil {
		if taskErr := s.taskRepo.MarkFailed(taskID, err.Error()); taskErr != nil {
			log.Printf("[ImportService] Warning: failed to record task failure: %v", taskErr)
		}
		return nil, err
	}

	summary, _ := json.Marshal(result)
	if err := s.taskRepo.MarkCompleted(taskID, string(summary)); err != nil {
		log.Printf("[ImportService] Warning: failed to record task completion: %v", err)
	}
	return result, nil
}

func (s *ImportService) importFile(path string, layer gpx.Layer, groupID string) (*ImportResult, error) {
	points, err := gpx.LoadFile(path, layer, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if err := s.prepare(points); err != nil {
		return nil, err
	}

	if err := s.trackRepo.InsertBatch(points); err != nil {
		return nil, fmt.Errorf("failed to store points for group %s: %w", groupID, err)
	}

	metrics.ImportsTotal.Inc()
	metrics.PointsImported.Add(float64(len(points)))

	log.Printf("[ImportService] Imported %d points for group %s from %s", len(points), groupID, path)
	return &ImportResult{GroupID: groupID, PointCount: len(points), Layer: string(layer)}, nil
}

// prepare fills heading, step distance and projected coordinates in place
func (s *ImportService) prepare(points []models.TrackPoint) error {
	for i := range points {
		p := &points[i]

		proj, err := s.transform.Forward(p.Longitude, p.Latitude)
		if err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
		p.Easting = proj[0]
		p.Northing = proj[1]
		p.UTMZone = s.transform.Zone

		if i > 0 {
			prev := points[i-1]
			p.Distance = spatial.HaversineDistance(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
			p.Heading = spatial.Bearing(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
		}
	}
	return nil
}
