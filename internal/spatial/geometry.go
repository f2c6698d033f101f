package spatial

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// RadiusOfGyration calculates the radius of gyration for a set of points.
// This measures the spatial dispersion around the centroid, in meters.
func RadiusOfGyration(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}

	center := Centroid(points)

	var sumSquaredDist float64
	for _, p := range points {
		dist := HaversineDistance(center.Lat, center.Lon, p.Lat, p.Lon)
		sumSquaredDist += dist * dist
	}

	return math.Sqrt(sumSquaredDist / float64(len(points)))
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		dist := HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
		totalDist += dist
	}

	return totalDist
}

// Tortuosity calculates the tortuosity of a path
// Tortuosity = actual path length / straight-line distance
// Value of 1 means straight line, >1 means curved/winding path
func Tortuosity(points []Point) float64 {
	if len(points) < 2 {
		return 1.0
	}

	pathLen := PathLength(points)
	straightDist := HaversineDistance(points[0].Lat, points[0].Lon, points[len(points)-1].Lat, points[len(points)-1].Lon)

	if straightDist == 0 {
		return 1.0
	}

	return pathLen / straightDist
}

// PlanarCentroid calculates the centroid of projected (easting/northing) points
func PlanarCentroid(points []orb.Point) orb.Point {
	if len(points) == 0 {
		return orb.Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p[0]
		sumY += p[1]
	}

	return orb.Point{sumX / float64(len(points)), sumY / float64(len(points))}
}

// ConvexHull computes the convex hull of projected points using the
// Andrew monotone chain algorithm. The returned ring is closed
// (first vertex repeated at the end) and counter-clockwise.
// Fewer than 3 distinct points yield a nil ring.
func ConvexHull(points []orb.Point) orb.Ring {
	if len(points) < 3 {
		return nil
	}

	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	// Drop duplicates so collinear runs do not confuse the chain
	uniq := pts[:1]
	for _, p := range pts[1:] {
		last := uniq[len(uniq)-1]
		if p[0] != last[0] || p[1] != last[1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return nil
	}

	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	var lower []orb.Point
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []orb.Point
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return nil
	}

	ring := orb.Ring(append(hull, hull[0]))
	return ring
}

// RingArea returns the planar area of a closed ring in the square of its
// coordinate unit (m² for UTM input)
func RingArea(ring orb.Ring) float64 {
	if len(ring) < 4 {
		return 0
	}
	return math.Abs(planar.Area(ring))
}

// PointInRing checks if a point is inside a closed ring using ray casting
func PointInRing(point orb.Point, ring orb.Ring) bool {
	if len(ring) < 4 {
		return false
	}

	inside := false
	j := len(ring) - 1

	for i := 0; i < len(ring); i++ {
		if ((ring[i][1] > point[1]) != (ring[j][1] > point[1])) &&
			(point[0] < (ring[j][0]-ring[i][0])*(point[1]-ring[i][1])/(ring[j][1]-ring[i][1])+ring[i][0]) {
			inside = !inside
		}
		j = i
	}

	return inside
}
