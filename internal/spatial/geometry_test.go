package spatial

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestConvexHull_Square(t *testing.T) {
	// Unit square corners plus interior points; hull must be the square
	points := []orb.Point{
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
		{0.5, 0.5}, {0.2, 0.8}, {0.9, 0.1},
	}

	ring := ConvexHull(points)
	if ring == nil {
		t.Fatal("expected a hull, got nil")
	}

	// Closed ring over the 4 corners
	if len(ring) != 5 {
		t.Fatalf("expected 5 ring vertices (closed square), got %d", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Error("hull ring is not closed")
	}

	area := RingArea(ring)
	if math.Abs(area-1.0) > 1e-9 {
		t.Errorf("expected unit area, got %f", area)
	}
}

func TestConvexHull_TooFewPoints(t *testing.T) {
	if ring := ConvexHull([]orb.Point{{0, 0}, {1, 1}}); ring != nil {
		t.Errorf("expected nil hull for 2 points, got %v", ring)
	}
}

func TestConvexHull_CollinearPoints(t *testing.T) {
	points := []orb.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if ring := ConvexHull(points); ring != nil {
		t.Errorf("expected nil hull for collinear points, got %v", ring)
	}
}

func TestConvexHull_ContainsAllPoints(t *testing.T) {
	points := []orb.Point{
		{0, 0}, {4, 0}, {4, 3}, {0, 3}, {2, 1}, {1, 2}, {3, 2.5},
	}
	ring := ConvexHull(points)
	if ring == nil {
		t.Fatal("expected a hull")
	}

	for _, p := range points {
		onBoundary := false
		for _, v := range ring {
			if v == p {
				onBoundary = true
				break
			}
		}
		if !onBoundary && !PointInRing(p, ring) {
			t.Errorf("point %v outside hull", p)
		}
	}
}

func TestPointInRing(t *testing.T) {
	ring := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}

	if !PointInRing(orb.Point{1, 1}, ring) {
		t.Error("center should be inside")
	}
	if PointInRing(orb.Point{3, 1}, ring) {
		t.Error("point beyond the right edge should be outside")
	}
}

func TestPlanarCentroid(t *testing.T) {
	points := []orb.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	c := PlanarCentroid(points)
	if c[0] != 1 || c[1] != 1 {
		t.Errorf("expected centroid (1,1), got %v", c)
	}
}

func TestTortuosity_StraightPath(t *testing.T) {
	points := []Point{
		{Lat: 31.0, Lon: 35.0},
		{Lat: 31.01, Lon: 35.0},
		{Lat: 31.02, Lon: 35.0},
	}
	tort := Tortuosity(points)
	if math.Abs(tort-1.0) > 1e-6 {
		t.Errorf("straight path should have tortuosity 1, got %f", tort)
	}
}

func TestPathLength_TwoPoints(t *testing.T) {
	// Roughly 1.11 km per 0.01 degree of latitude
	points := []Point{
		{Lat: 31.0, Lon: 35.0},
		{Lat: 31.01, Lon: 35.0},
	}
	length := PathLength(points)
	if length < 1000 || length > 1250 {
		t.Errorf("expected ~1.1 km, got %f m", length)
	}
}

func TestRadiusOfGyration_SinglePoint(t *testing.T) {
	if r := RadiusOfGyration([]Point{{Lat: 31, Lon: 35}}); r != 0 {
		t.Errorf("single point should have zero radius of gyration, got %f", r)
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point{
		{Lat: 31.0, Lon: 35.2},
		{Lat: 31.5, Lon: 35.0},
		{Lat: 31.2, Lon: 35.4},
	}
	minLat, minLon, maxLat, maxLon := BoundingBox(points)
	if minLat != 31.0 || minLon != 35.0 || maxLat != 31.5 || maxLon != 35.4 {
		t.Errorf("unexpected bbox: %f %f %f %f", minLat, minLon, maxLat, maxLon)
	}
}
