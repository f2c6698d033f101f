package homerange

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/movetrace/homerange-backend-go/internal/spatial"
	"github.com/movetrace/homerange-backend-go/internal/stats"
)

// BandwidthReference selects the reference bandwidth heuristic
const BandwidthReference = "reference"

// Minimum sample count for a meaningful density surface
const minKDEPoints = 5

// Default grid resolution (cells per axis)
const defaultGridSize = 128

// KDEOptions configures a kernel-density home-range estimate
type KDEOptions struct {
	// Bandwidth in meters; 0 means the reference bandwidth heuristic
	Bandwidth float64

	// ContourPercent is the probability mass the contour must enclose (0-100]
	ContourPercent float64

	// GridSize is the number of cells per axis; 0 means the default
	GridSize int
}

// KDEResult is a kernel-density utilization contour for one point set
type KDEResult struct {
	Ring      orb.Ring // hull of the included density cells, closed
	AreaM2    float64  // summed area of the included cells
	Bandwidth float64  // smoothing bandwidth used, meters
	Threshold float64  // density at the contour level
}

// ReferenceBandwidth computes the ad-hoc reference bandwidth
// h = sigma * n^(-1/6) with sigma pooled over both coordinates.
// Returns 0 for degenerate input (no spread).
func ReferenceBandwidth(points []orb.Point) float64 {
	if len(points) < 2 {
		return 0
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p[0]
		ys[i] = p[1]
	}

	sigma := math.Sqrt(0.5 * (stats.Variance(xs) + stats.Variance(ys)))
	return sigma * math.Pow(float64(len(points)), -1.0/6.0)
}

// KDE fits a 2-D Gaussian kernel density surface over a grid covering the
// points' extent (padded by three bandwidths) and extracts the smallest-area
// cell set holding ContourPercent of the probability mass. The returned ring
// is the convex hull of the included cells' corners.
func KDE(points []orb.Point, opts KDEOptions) (*KDEResult, error) {
	if opts.ContourPercent <= 0 || opts.ContourPercent > 100 {
		return nil, fmt.Errorf("homerange: contour percent must be in (0, 100], got %f", opts.ContourPercent)
	}
	if len(points) < minKDEPoints {
		return nil, fmt.Errorf("%w: need at least %d points for KDE, got %d", ErrInsufficientData, minKDEPoints, len(points))
	}

	h := opts.Bandwidth
	if h <= 0 {
		h = ReferenceBandwidth(points)
	}
	if h <= 0 {
		return nil, fmt.Errorf("%w: all points coincide, cannot fit a density surface", ErrInsufficientData)
	}

	gridSize := opts.GridSize
	if gridSize <= 0 {
		gridSize = defaultGridSize
	}

	minX, minY := points[0][0], points[0][1]
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	// Pad so the surface tails and every input point sit inside the grid
	pad := 3 * h
	minX -= pad
	maxX += pad
	minY -= pad
	maxY += pad

	cellW := (maxX - minX) / float64(gridSize)
	cellH := (maxY - minY) / float64(gridSize)
	cellArea := cellW * cellH

	// Density at each cell center
	norm := 1.0 / (float64(len(points)) * 2 * math.Pi * h * h)
	inv2h2 := 1.0 / (2 * h * h)

	type cell struct {
		ix, iy  int
		density float64
	}
	cells := make([]cell, 0, gridSize*gridSize)
	var totalMass float64
	for iy := 0; iy < gridSize; iy++ {
		cy := minY + (float64(iy)+0.5)*cellH
		for ix := 0; ix < gridSize; ix++ {
			cx := minX + (float64(ix)+0.5)*cellW

			var d float64
			for _, p := range points {
				dx := cx - p[0]
				dy := cy - p[1]
				d += math.Exp(-(dx*dx + dy*dy) * inv2h2)
			}
			d *= norm

			cells = append(cells, cell{ix: ix, iy: iy, density: d})
			totalMass += d * cellArea
		}
	}
	if totalMass <= 0 {
		return nil, fmt.Errorf("%w: density surface carries no mass", ErrInsufficientData)
	}

	// Include the highest-density cells until the requested mass is reached
	sort.Slice(cells, func(i, j int) bool { return cells[i].density > cells[j].density })

	target := opts.ContourPercent / 100.0
	var accumulated float64
	var included []cell
	var threshold float64
	for _, c := range cells {
		if accumulated >= target*totalMass {
			break
		}
		included = append(included, c)
		accumulated += c.density * cellArea
		threshold = c.density
	}
	if len(included) == 0 {
		return nil, fmt.Errorf("%w: contour at %.1f%% includes no cells", ErrInsufficientData, opts.ContourPercent)
	}

	// Outline: hull over the corners of every included cell
	corners := make([]orb.Point, 0, len(included)*4)
	for _, c := range included {
		x0 := minX + float64(c.ix)*cellW
		y0 := minY + float64(c.iy)*cellH
		corners = append(corners,
			orb.Point{x0, y0},
			orb.Point{x0 + cellW, y0},
			orb.Point{x0, y0 + cellH},
			orb.Point{x0 + cellW, y0 + cellH},
		)
	}
	ring := spatial.ConvexHull(corners)
	if ring == nil {
		return nil, fmt.Errorf("%w: contour region is degenerate", ErrInsufficientData)
	}

	return &KDEResult{
		Ring:      ring,
		AreaM2:    float64(len(included)) * cellArea,
		Bandwidth: h,
		Threshold: threshold,
	}, nil
}
