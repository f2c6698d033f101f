package projection

import (
	"errors"
	"fmt"

	"github.com/im7mortal/UTM"
	"github.com/paulmach/orb"
)

// Projection errors
var (
	// ErrNotGeographic is returned when input coordinates are outside the
	// valid longitude/latitude domain, which usually means the values were
	// already projected once
	ErrNotGeographic = errors.New("projection: input is not geographic (possible double projection)")

	// ErrZoneMismatch is returned when a point falls outside the configured
	// UTM zone
	ErrZoneMismatch = errors.New("projection: point outside configured UTM zone")
)

// Transform is a fixed WGS84 → UTM forward map for one study area
type Transform struct {
	Zone     int
	Northern bool
}

// NewTransform builds a transform for a UTM zone (1-60)
func NewTransform(zone int, northern bool) (*Transform, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("projection: invalid UTM zone %d", zone)
	}
	return &Transform{Zone: zone, Northern: northern}, nil
}

// Forward projects a WGS84 lon/lat pair into easting/northing meters.
// Points whose natural zone differs from the configured zone are rejected
// rather than silently projected with growing distortion.
func (t *Transform) Forward(lon, lat float64) (orb.Point, error) {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return orb.Point{}, fmt.Errorf("%w: (%f, %f)", ErrNotGeographic, lon, lat)
	}

	easting, northing, zone, _, err := UTM.FromLatLon(lat, lon, t.Northern)
	if err != nil {
		return orb.Point{}, fmt.Errorf("projection: forward transform failed: %w", err)
	}
	if zone != t.Zone {
		return orb.Point{}, fmt.Errorf("%w: point in zone %d, configured zone %d", ErrZoneMismatch, zone, t.Zone)
	}

	return orb.Point{easting, northing}, nil
}

// ForwardAll projects a sequence of lon/lat pairs, preserving order and count
func (t *Transform) ForwardAll(lons, lats []float64) ([]orb.Point, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("projection: coordinate count mismatch (%d lons, %d lats)", len(lons), len(lats))
	}

	out := make([]orb.Point, 0, len(lons))
	for i := range lons {
		p, err := t.Forward(lons[i], lats[i])
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Inverse converts easting/northing meters back to a WGS84 lon/lat pair
func (t *Transform) Inverse(p orb.Point) (lon, lat float64, err error) {
	lat, lon, err = UTM.ToLatLon(p[0], p[1], t.Zone, "", t.Northern)
	if err != nil {
		return 0, 0, fmt.Errorf("projection: inverse transform failed: %w", err)
	}
	return lon, lat, nil
}

// InverseRing reprojects a projected ring to lon/lat vertex pairs
func (t *Transform) InverseRing(ring orb.Ring) ([][2]float64, error) {
	out := make([][2]float64, 0, len(ring))
	for _, p := range ring {
		lon, lat, err := t.Inverse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out, nil
}
