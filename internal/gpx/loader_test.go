package gpx

import (
	"errors"
	"strings"
	"testing"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="collar-export" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="31.5010" lon="35.0020">
    <time>2019-03-02T06:15:00Z</time>
  </wpt>
  <wpt lat="31.5000" lon="35.0000">
    <time>2019-03-01T06:00:00Z</time>
  </wpt>
  <wpt lat="31.5030" lon="35.0040">
    <time>2019-03-03T06:30:00Z</time>
  </wpt>
  <trk>
    <trkseg>
      <trkpt lat="31.5100" lon="35.0100">
        <time>2019-03-01T07:00:00Z</time>
      </trkpt>
      <trkpt lat="31.5110" lon="35.0110">
        <time>2019-03-01T07:05:00Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestLoad_Waypoints(t *testing.T) {
	points, err := Load(strings.NewReader(sampleGPX), LayerWaypoints, "west")
	if err != nil {
		t.Fatal(err)
	}

	if len(points) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(points))
	}

	// Ordered by timestamp, not document order
	for i := 1; i < len(points); i++ {
		if points[i].DataTime < points[i-1].DataTime {
			t.Errorf("points not time-ordered at index %d", i)
		}
	}

	first := points[0]
	if first.GroupID != "west" {
		t.Errorf("expected group west, got %s", first.GroupID)
	}
	if first.Latitude != 31.5 || first.Longitude != 35.0 {
		t.Errorf("unexpected first point: (%f, %f)", first.Longitude, first.Latitude)
	}
}

func TestLoad_TrackPoints(t *testing.T) {
	points, err := Load(strings.NewReader(sampleGPX), LayerTrackPoints, "west")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 track points, got %d", len(points))
	}
}

func TestLoad_EmptyLayer(t *testing.T) {
	_, err := Load(strings.NewReader(sampleGPX), LayerRoutePoints, "west")
	if !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("expected ErrLayerNotFound, got %v", err)
	}
}

func TestLoad_UnknownLayer(t *testing.T) {
	if _, err := Load(strings.NewReader(sampleGPX), Layer("sections"), "west"); err == nil {
		t.Error("expected error for unknown layer")
	}
}

func TestLoad_MalformedContent(t *testing.T) {
	if _, err := Load(strings.NewReader("not xml at all"), LayerWaypoints, "west"); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/does/not/exist.gpx", LayerWaypoints, "west"); err == nil {
		t.Error("expected error for missing file")
	}
}
