package homerange

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

func TestMCP_TooFewPoints(t *testing.T) {
	points := []orb.Point{{0, 0}, {100, 100}}
	_, err := MCP(points, 100)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestMCP_InvalidPercent(t *testing.T) {
	points := []orb.Point{{0, 0}, {100, 0}, {0, 100}}
	if _, err := MCP(points, 0); err == nil {
		t.Error("expected error for percent 0")
	}
	if _, err := MCP(points, 101); err == nil {
		t.Error("expected error for percent > 100")
	}
}

func TestMCP_FullInclusionSquareKilometer(t *testing.T) {
	// 100 points uniform in a 1 km x 1 km square, corners pinned so the
	// hull spans the full square
	rng := rand.New(rand.NewSource(42))
	points := []orb.Point{
		{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000},
	}
	for i := 0; i < 96; i++ {
		points = append(points, orb.Point{rng.Float64() * 1000, rng.Float64() * 1000})
	}

	result, err := MCP(points, 100)
	if err != nil {
		t.Fatal(err)
	}
	if result.UsedPoints != len(points) {
		t.Errorf("100%% inclusion must keep every point: kept %d of %d", result.UsedPoints, len(points))
	}

	// Expect ~1 km² within 10%
	if math.Abs(result.AreaM2-1e6) > 1e5 {
		t.Errorf("expected ~1e6 m², got %f", result.AreaM2)
	}
}

func TestMCP_ConvexSetVerticesMatchHull(t *testing.T) {
	// Points already forming a convex set: the hull vertex set is the input
	square := []orb.Point{{0, 0}, {500, 0}, {500, 500}, {0, 500}}

	result, err := MCP(square, 100)
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[orb.Point]bool)
	for _, v := range result.Ring[:len(result.Ring)-1] {
		got[v] = true
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 distinct hull vertices, got %d", len(got))
	}
	for _, p := range square {
		if !got[p] {
			t.Errorf("corner %v missing from hull", p)
		}
	}
}

func TestMCP_AreaMonotonicInInclusionPercent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([]orb.Point, 0, 200)
	for i := 0; i < 200; i++ {
		points = append(points, orb.Point{rng.NormFloat64() * 300, rng.NormFloat64() * 300})
	}

	prevArea := 0.0
	for _, pct := range []float64{50, 60, 70, 80, 90, 95, 100} {
		result, err := MCP(points, pct)
		if err != nil {
			t.Fatalf("percent %f: %v", pct, err)
		}
		if result.AreaM2 < prevArea {
			t.Errorf("area shrank from %f to %f at %f%%", prevArea, result.AreaM2, pct)
		}
		prevArea = result.AreaM2
	}
}

func TestMCP_TrimKeepsNearestPoints(t *testing.T) {
	// A tight cluster with one far outlier: at 90% the outlier must go
	points := []orb.Point{
		{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5},
		{3, 7}, {7, 3}, {2, 2}, {8, 8},
		{100000, 100000}, // outlier
	}

	trimmed, err := MCP(points, 90)
	if err != nil {
		t.Fatal(err)
	}
	full, err := MCP(points, 100)
	if err != nil {
		t.Fatal(err)
	}

	if trimmed.AreaM2 >= full.AreaM2 {
		t.Errorf("trimmed area %f should be far below full area %f", trimmed.AreaM2, full.AreaM2)
	}
	if trimmed.AreaM2 > 200 {
		t.Errorf("trimmed hull should cover only the cluster, got %f m²", trimmed.AreaM2)
	}
}
