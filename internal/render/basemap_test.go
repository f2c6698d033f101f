package render

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestLonLatToPixel_Origin(t *testing.T) {
	// At zoom 0 the world is one 256px tile; (0,0) maps to its center
	x, y := LonLatToPixel(0, 0, 0)
	if math.Abs(x-128) > 1e-9 || math.Abs(y-128) > 1e-9 {
		t.Errorf("expected (128, 128), got (%f, %f)", x, y)
	}
}

func TestLonLatToPixel_Corners(t *testing.T) {
	x, _ := LonLatToPixel(-180, 0, 0)
	if math.Abs(x) > 1e-9 {
		t.Errorf("expected x=0 at lon -180, got %f", x)
	}
	x, _ = LonLatToPixel(180, 0, 0)
	if math.Abs(x-256) > 1e-9 {
		t.Errorf("expected x=256 at lon 180, got %f", x)
	}
}

func TestLonLatToPixel_ZoomDoubles(t *testing.T) {
	x1, y1 := LonLatToPixel(35, 31.5, 10)
	x2, y2 := LonLatToPixel(35, 31.5, 11)
	if math.Abs(x2-2*x1) > 1e-6 || math.Abs(y2-2*y1) > 1e-6 {
		t.Errorf("zoom 11 should double zoom 10 coordinates: (%f,%f) vs (%f,%f)", x1, y1, x2, y2)
	}
}

func TestZoomFor_SmallBoxHighZoom(t *testing.T) {
	small := orb.Bound{Min: orb.Point{35.00, 31.50}, Max: orb.Point{35.01, 31.51}}
	wide := orb.Bound{Min: orb.Point{20, 20}, Max: orb.Point{50, 45}}

	zSmall := ZoomFor(small, 1024)
	zWide := ZoomFor(wide, 1024)

	if zSmall <= zWide {
		t.Errorf("smaller bbox should pick higher zoom: %d vs %d", zSmall, zWide)
	}
	if zSmall < 1 || zSmall > 19 {
		t.Errorf("zoom out of range: %d", zSmall)
	}
}

func TestUnionBound(t *testing.T) {
	layers := []GroupLayer{
		{GroupID: "a", Points: [][2]float64{{35.0, 31.0}, {35.2, 31.1}}},
		{GroupID: "b", Points: [][2]float64{{34.8, 31.4}}, Polygon: [][2]float64{{35.3, 30.9}, {35.4, 31.0}, {35.3, 31.1}}},
	}

	bound, err := unionBound(layers)
	if err != nil {
		t.Fatal(err)
	}

	if bound.Min[0] != 34.8 || bound.Max[0] != 35.4 {
		t.Errorf("unexpected lon bounds: %f..%f", bound.Min[0], bound.Max[0])
	}
	if bound.Min[1] != 30.9 || bound.Max[1] != 31.4 {
		t.Errorf("unexpected lat bounds: %f..%f", bound.Min[1], bound.Max[1])
	}
}

func TestUnionBound_Empty(t *testing.T) {
	if _, err := unionBound([]GroupLayer{{GroupID: "a"}}); err == nil {
		t.Error("expected error for layers without coordinates")
	}
}

func TestPad(t *testing.T) {
	b := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 20}}
	padded := pad(b, 0.1)

	if padded.Min[0] != -1 || padded.Max[0] != 11 {
		t.Errorf("unexpected lon padding: %f..%f", padded.Min[0], padded.Max[0])
	}
	if padded.Min[1] != -2 || padded.Max[1] != 22 {
		t.Errorf("unexpected lat padding: %f..%f", padded.Min[1], padded.Max[1])
	}
}

func TestPad_DegenerateBox(t *testing.T) {
	b := orb.Bound{Min: orb.Point{35, 31}, Max: orb.Point{35, 31}}
	padded := pad(b, 0.05)

	if padded.Max[0] <= padded.Min[0] || padded.Max[1] <= padded.Min[1] {
		t.Error("padding must widen a degenerate box")
	}
}
