package homerange

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/movetrace/homerange-backend-go/internal/spatial"
)

// ErrInsufficientData is returned when a point set is too small or too
// degenerate to support an estimate
var ErrInsufficientData = errors.New("homerange: insufficient data")

// MCPResult is a minimum convex polygon estimate for one point set
type MCPResult struct {
	Ring       orb.Ring // closed, counter-clockwise
	AreaM2     float64
	UsedPoints int // points remaining after outlier trimming
}

// MCP computes the minimum convex polygon over the given projected points.
// Points are trimmed by descending distance from the centroid until
// inclusionPercent of them remain; the hull of the rest is returned.
// inclusionPercent=100 keeps every point.
func MCP(points []orb.Point, inclusionPercent float64) (*MCPResult, error) {
	if inclusionPercent <= 0 || inclusionPercent > 100 {
		return nil, fmt.Errorf("homerange: inclusion percent must be in (0, 100], got %f", inclusionPercent)
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 points for MCP, got %d", ErrInsufficientData, len(points))
	}

	center := spatial.PlanarCentroid(points)

	type ranked struct {
		p    orb.Point
		dist float64
	}
	byDist := make([]ranked, len(points))
	for i, p := range points {
		dx := p[0] - center[0]
		dy := p[1] - center[1]
		byDist[i] = ranked{p: p, dist: math.Hypot(dx, dy)}
	}
	sort.Slice(byDist, func(i, j int) bool { return byDist[i].dist < byDist[j].dist })

	keep := int(math.Ceil(inclusionPercent / 100.0 * float64(len(points))))
	if keep > len(points) {
		keep = len(points)
	}
	if keep < 3 {
		return nil, fmt.Errorf("%w: only %d points remain at %.1f%% inclusion", ErrInsufficientData, keep, inclusionPercent)
	}

	kept := make([]orb.Point, keep)
	for i := 0; i < keep; i++ {
		kept[i] = byDist[i].p
	}

	ring := spatial.ConvexHull(kept)
	if ring == nil {
		return nil, fmt.Errorf("%w: remaining points are collinear or coincident", ErrInsufficientData)
	}

	return &MCPResult{
		Ring:       ring,
		AreaM2:     spatial.RingArea(ring),
		UsedPoints: keep,
	}, nil
}
