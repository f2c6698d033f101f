package fractal

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
)

func TestSpectralDimension_TooFewPoints(t *testing.T) {
	points := make([]orb.Point, MinSamples-1)
	for i := range points {
		points[i] = orb.Point{float64(i), float64(i)}
	}

	_, err := SpectralDimension(points, LagAutomatic)
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Errorf("expected ErrInsufficientSamples, got %v", err)
	}
}

func TestSpectralDimension_UnknownLagMode(t *testing.T) {
	points := make([]orb.Point, 64)
	for i := range points {
		points[i] = orb.Point{float64(i), float64(i)}
	}
	if _, err := SpectralDimension(points, "bogus"); err == nil {
		t.Error("expected error for unknown lag mode")
	}
}

func TestSpectralDimension_StraightLine(t *testing.T) {
	// Collinear points: a smooth path has dimension 1
	points := make([]orb.Point, 256)
	for i := range points {
		points[i] = orb.Point{float64(i) * 10, float64(i) * 10}
	}

	est, err := SpectralDimension(points, LagAutomatic)
	if err != nil {
		t.Fatal(err)
	}
	if est.Dimension > 1.1 {
		t.Errorf("straight line should give D close to 1, got %f", est.Dimension)
	}
}

func TestSpectralDimension_RandomWalk(t *testing.T) {
	// A space-filling random walk is rougher than a line
	rng := rand.New(rand.NewSource(11))
	points := make([]orb.Point, 1024)
	x, y := 0.0, 0.0
	for i := range points {
		x += rng.NormFloat64() * 10
		y += rng.NormFloat64() * 10
		points[i] = orb.Point{x, y}
	}

	est, err := SpectralDimension(points, LagAutomatic)
	if err != nil {
		t.Fatal(err)
	}
	if est.Dimension <= 1.1 {
		t.Errorf("random walk should give D well above 1, got %f", est.Dimension)
	}
	if est.Dimension > 2.0 {
		t.Errorf("D must not exceed 2, got %f", est.Dimension)
	}
}

func TestSpectralDimension_RandomWalkRougherThanLine(t *testing.T) {
	line := make([]orb.Point, 512)
	for i := range line {
		line[i] = orb.Point{float64(i), 2 * float64(i)}
	}

	rng := rand.New(rand.NewSource(13))
	walk := make([]orb.Point, 512)
	x, y := 0.0, 0.0
	for i := range walk {
		x += rng.NormFloat64()
		y += rng.NormFloat64()
		walk[i] = orb.Point{x, y}
	}

	lineEst, err := SpectralDimension(line, LagAutomatic)
	if err != nil {
		t.Fatal(err)
	}
	walkEst, err := SpectralDimension(walk, LagAutomatic)
	if err != nil {
		t.Fatal(err)
	}

	if walkEst.Dimension <= lineEst.Dimension {
		t.Errorf("walk D (%f) should exceed line D (%f)", walkEst.Dimension, lineEst.Dimension)
	}
}

func TestSpectralDimension_DegenerateAxis(t *testing.T) {
	// Movement strictly along one axis: the constant coordinate must not
	// break the estimate
	rng := rand.New(rand.NewSource(17))
	points := make([]orb.Point, 128)
	x := 0.0
	for i := range points {
		x += rng.NormFloat64()
		points[i] = orb.Point{x, 42.0}
	}

	est, err := SpectralDimension(points, LagAutomatic)
	if err != nil {
		t.Fatal(err)
	}
	if est.Dimension < 1 || est.Dimension > 2 {
		t.Errorf("dimension out of [1,2]: %f", est.Dimension)
	}
}

func TestWritePlot(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	points := make([]orb.Point, 256)
	x, y := 0.0, 0.0
	for i := range points {
		x += rng.NormFloat64()
		y += rng.NormFloat64()
		points[i] = orb.Point{x, y}
	}

	est, err := SpectralDimension(points, LagFull)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "loglog.png")
	if err := WritePlot(est, path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
