package gpx

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/movetrace/homerange-backend-go/internal/models"
)

// Layer names a point layer inside a GPX document
type Layer string

const (
	LayerWaypoints   Layer = "waypoints"
	LayerTrackPoints Layer = "track_points"
	LayerRoutePoints Layer = "route_points"
)

// ErrLayerNotFound is returned when the requested layer is missing or
// contains no point geometries
var ErrLayerNotFound = errors.New("gpx: layer not found or empty")

// LoadFile parses a GPX file and extracts the points of the named layer,
// ordered by timestamp. The group id is attached to every point.
func LoadFile(path string, layer Layer, groupID string) ([]models.TrackPoint, error) {
	doc, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpx file %s: %w", path, err)
	}
	return extract(doc, layer, groupID)
}

// Load parses GPX content from a reader; see LoadFile.
func Load(r io.Reader, layer Layer, groupID string) ([]models.TrackPoint, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gpx content: %w", err)
	}
	doc, err := gpx.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpx content: %w", err)
	}
	return extract(doc, layer, groupID)
}

func extract(doc *gpx.GPX, layer Layer, groupID string) ([]models.TrackPoint, error) {
	var raw []gpx.GPXPoint

	switch layer {
	case LayerWaypoints:
		raw = doc.Waypoints
	case LayerTrackPoints:
		for _, trk := range doc.Tracks {
			for _, seg := range trk.Segments {
				raw = append(raw, seg.Points...)
			}
		}
	case LayerRoutePoints:
		for _, rte := range doc.Routes {
			raw = append(raw, rte.Points...)
		}
	default:
		return nil, fmt.Errorf("gpx: unknown layer %q", layer)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLayerNotFound, layer)
	}

	points := make([]models.TrackPoint, 0, len(raw))
	for _, p := range raw {
		points = append(points, models.TrackPoint{
			GroupID:   groupID,
			DataTime:  p.Timestamp.Unix(),
			Longitude: p.Longitude,
			Latitude:  p.Latitude,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].DataTime < points[j].DataTime
	})

	return points, nil
}
