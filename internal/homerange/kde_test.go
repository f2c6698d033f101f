package homerange

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"

	"github.com/movetrace/homerange-backend-go/internal/spatial"
)

func clusterPoints(n int, spread float64, seed int64) []orb.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]orb.Point, n)
	for i := range points {
		points[i] = orb.Point{rng.NormFloat64() * spread, rng.NormFloat64() * spread}
	}
	return points
}

func TestKDE_TooFewPoints(t *testing.T) {
	points := []orb.Point{{0, 0}, {10, 0}, {0, 10}}
	_, err := KDE(points, KDEOptions{ContourPercent: 95})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestKDE_AllPointsIdentical(t *testing.T) {
	points := make([]orb.Point, 20)
	for i := range points {
		points[i] = orb.Point{500, 500}
	}

	_, err := KDE(points, KDEOptions{ContourPercent: 95})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for zero spread, got %v", err)
	}
}

func TestKDE_InvalidContourPercent(t *testing.T) {
	points := clusterPoints(50, 100, 1)
	if _, err := KDE(points, KDEOptions{ContourPercent: 0}); err == nil {
		t.Error("expected error for contour percent 0")
	}
	if _, err := KDE(points, KDEOptions{ContourPercent: 120}); err == nil {
		t.Error("expected error for contour percent > 100")
	}
}

func TestReferenceBandwidth(t *testing.T) {
	points := clusterPoints(100, 200, 2)

	h := ReferenceBandwidth(points)
	if h <= 0 {
		t.Fatalf("expected positive bandwidth, got %f", h)
	}

	// sigma ~ 200, n^(-1/6) for n=100 ~ 0.46: h in a loose band around 92
	if h < 40 || h > 200 {
		t.Errorf("reference bandwidth out of plausible range: %f", h)
	}
}

func TestKDE_FullContourEnclosesEveryPoint(t *testing.T) {
	points := clusterPoints(60, 150, 3)

	result, err := KDE(points, KDEOptions{ContourPercent: 100})
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range points {
		if !spatial.PointInRing(p, result.Ring) {
			t.Errorf("point %d (%v) outside the 100%% contour", i, p)
		}
	}
}

func TestKDE_AreaGrowsWithContourPercent(t *testing.T) {
	points := clusterPoints(80, 120, 4)

	prev := 0.0
	for _, pct := range []float64{50, 70, 90, 95, 100} {
		result, err := KDE(points, KDEOptions{ContourPercent: pct})
		if err != nil {
			t.Fatalf("contour %f: %v", pct, err)
		}
		if result.AreaM2 < prev {
			t.Errorf("area shrank from %f to %f at %f%%", prev, result.AreaM2, pct)
		}
		prev = result.AreaM2
	}
}

func TestKDE_FixedBandwidthUsed(t *testing.T) {
	points := clusterPoints(50, 100, 5)

	result, err := KDE(points, KDEOptions{Bandwidth: 75, ContourPercent: 95})
	if err != nil {
		t.Fatal(err)
	}
	if result.Bandwidth != 75 {
		t.Errorf("expected bandwidth 75, got %f", result.Bandwidth)
	}
	if result.AreaM2 <= 0 {
		t.Errorf("expected positive contour area, got %f", result.AreaM2)
	}
}

func TestKDE_LargerBandwidthLargerArea(t *testing.T) {
	points := clusterPoints(60, 100, 6)

	small, err := KDE(points, KDEOptions{Bandwidth: 30, ContourPercent: 95})
	if err != nil {
		t.Fatal(err)
	}
	large, err := KDE(points, KDEOptions{Bandwidth: 300, ContourPercent: 95})
	if err != nil {
		t.Fatal(err)
	}

	if large.AreaM2 <= small.AreaM2 {
		t.Errorf("bandwidth 300 area (%f) should exceed bandwidth 30 area (%f)",
			large.AreaM2, small.AreaM2)
	}
}
