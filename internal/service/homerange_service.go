package service

import (
	"fmt"
	"log"
	"strconv"

	"github.com/paulmach/orb"

	"github.com/movetrace/homerange-backend-go/internal/homerange"
	"github.com/movetrace/homerange-backend-go/internal/metrics"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/projection"
	"github.com/movetrace/homerange-backend-go/internal/repository"
)

// HomeRangeService runs the MCP and KDE estimators per study group
type HomeRangeService struct {
	trackRepo    *repository.TrackRepository
	estimateRepo *repository.EstimateRepository
	transform    *projection.Transform
}

// NewHomeRangeService creates a new home-range service
func NewHomeRangeService(trackRepo *repository.TrackRepository, estimateRepo *repository.EstimateRepository, transform *projection.Transform) *HomeRangeService {
	return &HomeRangeService{
		trackRepo:    trackRepo,
		estimateRepo: estimateRepo,
		transform:    transform,
	}
}

// EstimateMCP computes one minimum convex polygon per requested group
func (s *HomeRangeService) EstimateMCP(req models.HomeRangeRequest) ([]models.HomeRangeEstimate, error) {
	req = s.normalize(req)

	var estimates []models.HomeRangeEstimate
	for _, groupID := range req.GroupIDs {
		points, err := s.groupPoints(groupID, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}

		result, err := homerange.MCP(points, req.Percent)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", groupID, err)
		}

		est := models.HomeRangeEstimate{
			GroupID:    groupID,
			Estimator:  models.EstimatorMCP,
			Percent:    req.Percent,
			Area:       req.Unit.FromSquareMeters(result.AreaM2),
			Unit:       req.Unit,
			PointCount: result.UsedPoints,
			Vertices:   ringVertices(result.Ring),
		}
		if est.VerticesGeo, err = s.transform.InverseRing(result.Ring); err != nil {
			return nil, fmt.Errorf("group %s: %w", groupID, err)
		}

		if err := s.estimateRepo.Insert(&est); err != nil {
			return nil, err
		}
		metrics.EstimatesTotal.WithLabelValues(models.EstimatorMCP).Inc()
		log.Printf("[HomeRangeService] MCP %s: %.3f %s at %.0f%% (%d points)",
			groupID, est.Area, est.Unit, est.Percent, est.PointCount)

		estimates = append(estimates, est)
	}
	return estimates, nil
}

// EstimateKDE computes one kernel-density contour per requested group
func (s *HomeRangeService) EstimateKDE(req models.HomeRangeRequest) ([]models.HomeRangeEstimate, error) {
	req = s.normalize(req)

	bandwidth, err := parseBandwidth(req.Bandwidth)
	if err != nil {
		return nil, err
	}

	var estimates []models.HomeRangeEstimate
	for _, groupID := range req.GroupIDs {
		points, err := s.groupPoints(groupID, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}

		result, err := homerange.KDE(points, homerange.KDEOptions{
			Bandwidth:      bandwidth,
			ContourPercent: req.Percent,
		})
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", groupID, err)
		}

		est := models.HomeRangeEstimate{
			GroupID:    groupID,
			Estimator:  models.EstimatorKDE,
			Percent:    req.Percent,
			Area:       req.Unit.FromSquareMeters(result.AreaM2),
			Unit:       req.Unit,
			PointCount: len(points),
			Bandwidth:  result.Bandwidth,
			Vertices:   ringVertices(result.Ring),
		}
		if est.VerticesGeo, err = s.transform.InverseRing(result.Ring); err != nil {
			return nil, fmt.Errorf("group %s: %w", groupID, err)
		}

		if err := s.estimateRepo.Insert(&est); err != nil {
			return nil, err
		}
		metrics.EstimatesTotal.WithLabelValues(models.EstimatorKDE).Inc()
		log.Printf("[HomeRangeService] KDE %s: %.3f %s at %.0f%% (h=%.1f m)",
			groupID, est.Area, est.Unit, est.Percent, est.Bandwidth)

		estimates = append(estimates, est)
	}
	return estimates, nil
}

// ListEstimates returns stored estimates for one group
func (s *HomeRangeService) ListEstimates(groupID string) ([]models.HomeRangeEstimate, error) {
	return s.estimateRepo.ListByGroup(groupID)
}

// groupPoints loads one group's projected coordinates
func (s *HomeRangeService) groupPoints(groupID string, startTime, endTime int64) ([]orb.Point, error) {
	records, err := s.trackRepo.GetGroupPoints(groupID, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, homerange.ErrInsufficientData)
	}

	points := make([]orb.Point, len(records))
	for i, rec := range records {
		points[i] = orb.Point{rec.Easting, rec.Northing}
	}
	return points, nil
}

func (s *HomeRangeService) normalize(req models.HomeRangeRequest) models.HomeRangeRequest {
	if req.Percent <= 0 {
		req.Percent = 95
	}
	if !req.Unit.Valid() {
		req.Unit = models.UnitSquareKilometers
	}
	return req
}

func parseBandwidth(mode string) (float64, error) {
	switch mode {
	case "", homerange.BandwidthReference:
		return 0, nil
	}
	h, err := strconv.ParseFloat(mode, 64)
	if err != nil || h <= 0 {
		return 0, fmt.Errorf("homerange: bandwidth must be %q or a positive value in meters, got %q",
			homerange.BandwidthReference, mode)
	}
	return h, nil
}

func ringVertices(ring orb.Ring) [][2]float64 {
	out := make([][2]float64, len(ring))
	for i, p := range ring {
		out[i] = [2]float64{p[0], p[1]}
	}
	return out
}
