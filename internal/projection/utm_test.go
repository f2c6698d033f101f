package projection

import (
	"errors"
	"math"
	"testing"
)

func TestNewTransform_InvalidZone(t *testing.T) {
	if _, err := NewTransform(0, true); err == nil {
		t.Error("expected error for zone 0")
	}
	if _, err := NewTransform(61, true); err == nil {
		t.Error("expected error for zone 61")
	}
}

func TestForward_Zone36(t *testing.T) {
	// Study area: eastern Mediterranean, naturally in UTM zone 36N
	tr, err := NewTransform(36, true)
	if err != nil {
		t.Fatal(err)
	}

	p, err := tr.Forward(35.0, 31.5)
	if err != nil {
		t.Fatalf("forward transform failed: %v", err)
	}

	// Longitude 35 is east of the zone 36 central meridian (33°E), so the
	// easting exceeds the 500 km false easting; northing around 3.48e6 m
	if p[0] < 500000 || p[0] > 800000 {
		t.Errorf("unexpected easting %f", p[0])
	}
	if p[1] < 3.3e6 || p[1] > 3.7e6 {
		t.Errorf("unexpected northing %f", p[1])
	}
}

func TestRoundTrip(t *testing.T) {
	tr, err := NewTransform(36, true)
	if err != nil {
		t.Fatal(err)
	}

	cases := [][2]float64{ // lon, lat
		{35.0, 31.5},
		{34.3, 30.9},
		{35.9, 32.7},
	}

	for _, c := range cases {
		p, err := tr.Forward(c[0], c[1])
		if err != nil {
			t.Fatalf("forward (%f, %f): %v", c[0], c[1], err)
		}

		lon, lat, err := tr.Inverse(p)
		if err != nil {
			t.Fatalf("inverse (%f, %f): %v", p[0], p[1], err)
		}

		if math.Abs(lon-c[0]) > 1e-5 || math.Abs(lat-c[1]) > 1e-5 {
			t.Errorf("round trip drifted: (%f, %f) -> (%f, %f)", c[0], c[1], lon, lat)
		}
	}
}

func TestForward_RejectsProjectedInput(t *testing.T) {
	tr, _ := NewTransform(36, true)

	// Values far outside the geographic domain: already-projected meters
	_, err := tr.Forward(634028.0, 3486018.0)
	if !errors.Is(err, ErrNotGeographic) {
		t.Errorf("expected ErrNotGeographic, got %v", err)
	}
}

func TestForward_RejectsWrongZone(t *testing.T) {
	tr, _ := NewTransform(36, true)

	// Longitude 10 belongs to zone 32
	_, err := tr.Forward(10.0, 31.5)
	if !errors.Is(err, ErrZoneMismatch) {
		t.Errorf("expected ErrZoneMismatch, got %v", err)
	}
}

func TestForwardAll_CountMismatch(t *testing.T) {
	tr, _ := NewTransform(36, true)
	if _, err := tr.ForwardAll([]float64{35.0}, []float64{31.0, 31.1}); err == nil {
		t.Error("expected error for mismatched coordinate counts")
	}
}

func TestForwardAll_PreservesOrderAndCount(t *testing.T) {
	tr, _ := NewTransform(36, true)

	lons := []float64{34.9, 35.0, 35.1}
	lats := []float64{31.4, 31.5, 31.6}

	out, err := tr.ForwardAll(lons, lats)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 points, got %d", len(out))
	}

	// Eastings increase with longitude, northings with latitude
	if !(out[0][0] < out[1][0] && out[1][0] < out[2][0]) {
		t.Error("eastings not increasing with longitude")
	}
	if !(out[0][1] < out[1][1] && out[1][1] < out[2][1]) {
		t.Error("northings not increasing with latitude")
	}
}
