package service

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"

	"github.com/movetrace/homerange-backend-go/internal/fractal"
	"github.com/movetrace/homerange-backend-go/internal/metrics"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/repository"
)

// FractalService runs the spectral fractal-dimension estimator over
// time-windowed subsets of a group's track
type FractalService struct {
	trackRepo *repository.TrackRepository
	outputDir string
}

// NewFractalService creates a new fractal service
func NewFractalService(trackRepo *repository.TrackRepository, outputDir string) *FractalService {
	return &FractalService{trackRepo: trackRepo, outputDir: outputDir}
}

// Estimate computes the fractal dimension of a group's movement path,
// optionally restricted to a named calendar window or explicit bounds
func (s *FractalService) Estimate(req models.FractalRequest) (*models.FractalResult, error) {
	if req.GroupID == "" {
		return nil, fmt.Errorf("fractal: group id is required")
	}

	startTime, endTime, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}

	records, err := s.trackRepo.GetGroupPoints(req.GroupID, startTime, endTime)
	if err != nil {
		return nil, err
	}

	points := make([]orb.Point, len(records))
	for i, rec := range records {
		points[i] = orb.Point{rec.Easting, rec.Northing}
	}

	est, err := fractal.SpectralDimension(points, req.LagMode)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", req.GroupID, err)
	}
	metrics.FractalRunsTotal.Inc()

	result := &models.FractalResult{
		GroupID:    req.GroupID,
		Window:     req.Window,
		Dimension:  est.Dimension,
		Exponent:   est.Exponent,
		PointCount: est.N,
		LagMode:    req.LagMode,
	}
	if result.LagMode == "" {
		result.LagMode = fractal.LagAutomatic
	}

	if req.PlotPath != "" {
		path := req.PlotPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.outputDir, path)
		}
		if err := fractal.WritePlot(est, path); err != nil {
			return nil, err
		}
		result.PlotPath = path
	}

	log.Printf("[FractalService] %s window=%s: D=%.3f (beta=%.2f, n=%d)",
		req.GroupID, req.Window, result.Dimension, result.Exponent, result.PointCount)
	return result, nil
}

// resolveWindow maps a named calendar window onto [start, end] bounds.
// Named windows split the group's observed date span into three equal
// calendar thirds; explicit bounds in the request win.
func (s *FractalService) resolveWindow(req models.FractalRequest) (int64, int64, error) {
	if req.StartTime > 0 || req.EndTime > 0 {
		return req.StartTime, req.EndTime, nil
	}
	if req.Window == "" {
		return 0, 0, nil
	}

	all, err := s.trackRepo.GetGroupPoints(req.GroupID, 0, 0)
	if err != nil {
		return 0, 0, err
	}
	if len(all) == 0 {
		return 0, 0, fmt.Errorf("group %s has no points", req.GroupID)
	}

	first := time.Unix(all[0].DataTime, 0).UTC()
	last := time.Unix(all[len(all)-1].DataTime, 0).UTC()
	third := last.Sub(first) / 3

	switch req.Window {
	case models.WindowEarly:
		return first.Unix(), first.Add(third).Unix(), nil
	case models.WindowMid:
		return first.Add(third).Unix(), first.Add(2 * third).Unix(), nil
	case models.WindowLate:
		return first.Add(2 * third).Unix(), last.Unix(), nil
	default:
		return 0, 0, fmt.Errorf("fractal: unknown window %q", req.Window)
	}
}
