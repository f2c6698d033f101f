package render

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

// GroupLayer is one study group's contribution to a map: its fixes and an
// optional home-range outline, both in lon/lat
type GroupLayer struct {
	GroupID string
	Points  [][2]float64
	Polygon [][2]float64
}

// Options configures a map rendering call
type Options struct {
	Width        int     // canvas width in pixels; height follows the bbox aspect
	PaddingRatio float64 // bbox padding as a fraction of its span
	PointRadius  float64
}

// DefaultOptions are used for zero-valued fields
var DefaultOptions = Options{
	Width:        1024,
	PaddingRatio: 0.05,
	PointRadius:  3,
}

// Palette assigns a stable colour per group id by first-seen order
var palette = [][3]float64{
	{0.85, 0.33, 0.10},
	{0.00, 0.45, 0.74},
	{0.47, 0.67, 0.19},
	{0.49, 0.18, 0.56},
	{0.93, 0.69, 0.13},
	{0.30, 0.75, 0.93},
}

// Mapper composes basemap, points and polygons into a single PNG
type Mapper struct {
	fetcher *TileFetcher
}

// NewMapper creates a mapper backed by the given tile fetcher
func NewMapper(fetcher *TileFetcher) *Mapper {
	return &Mapper{fetcher: fetcher}
}

// Render draws every group onto one image and writes it to path.
// A basemap fetch failure degrades to a plain background with a warning;
// it never fails the call.
func (m *Mapper) Render(ctx context.Context, layers []GroupLayer, opts Options, path string) error {
	if len(layers) == 0 {
		return fmt.Errorf("render: no layers to draw")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultOptions.Width
	}
	if opts.PaddingRatio <= 0 {
		opts.PaddingRatio = DefaultOptions.PaddingRatio
	}
	if opts.PointRadius <= 0 {
		opts.PointRadius = DefaultOptions.PointRadius
	}

	bound, err := unionBound(layers)
	if err != nil {
		return err
	}
	bound = pad(bound, opts.PaddingRatio)

	zoom := ZoomFor(bound, float64(opts.Width))

	// Pixel frame of the padded bbox at the chosen zoom
	px0, py0 := LonLatToPixel(bound.Min[0], bound.Max[1], zoom)
	px1, py1 := LonLatToPixel(bound.Max[0], bound.Min[1], zoom)
	width := int(math.Ceil(px1 - px0))
	height := int(math.Ceil(py1 - py0))
	if width < 1 || height < 1 {
		return fmt.Errorf("render: degenerate bounding box")
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.93, 0.93, 0.90)
	dc.Clear()

	if basemap, ox, oy, err := m.fetcher.Compose(ctx, bound, zoom); err != nil {
		log.Printf("[Mapper] Warning: basemap unavailable, drawing without it: %v", err)
	} else {
		dc.DrawImage(basemap, int(ox-px0), int(oy-py0))
	}

	toCanvas := func(lon, lat float64) (float64, float64) {
		gx, gy := LonLatToPixel(lon, lat, zoom)
		return gx - px0, gy - py0
	}

	for i, layer := range layers {
		r, g, b := colorFor(i)

		// Polygon overlay with partial transparency
		if len(layer.Polygon) >= 3 {
			dc.NewSubPath()
			for j, v := range layer.Polygon {
				x, y := toCanvas(v[0], v[1])
				if j == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
			dc.SetRGBA(r, g, b, 0.25)
			dc.FillPreserve()
			dc.SetRGBA(r, g, b, 0.9)
			dc.SetLineWidth(2)
			dc.Stroke()
		}

		// Fixes at low opacity so density shows through
		dc.SetRGBA(r, g, b, 0.35)
		for _, v := range layer.Points {
			x, y := toCanvas(v[0], v[1])
			dc.DrawCircle(x, y, opts.PointRadius)
			dc.Fill()
		}
	}

	drawAxisLabels(dc, width, height)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: failed to write %s: %w", path, err)
	}
	return nil
}

func drawAxisLabels(dc *gg.Context, width, height int) {
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("Longitude", float64(width)/2, float64(height)-6, 0.5, 0)

	dc.Push()
	dc.RotateAbout(-math.Pi/2, 12, float64(height)/2)
	dc.DrawStringAnchored("Latitude", 12, float64(height)/2, 0.5, 0)
	dc.Pop()
}

func colorFor(i int) (r, g, b float64) {
	c := palette[i%len(palette)]
	return c[0], c[1], c[2]
}

func unionBound(layers []GroupLayer) (orb.Bound, error) {
	first := true
	var bound orb.Bound
	for _, layer := range layers {
		for _, v := range layer.Points {
			p := orb.Point{v[0], v[1]}
			if first {
				bound = orb.Bound{Min: p, Max: p}
				first = false
			} else {
				bound = bound.Extend(p)
			}
		}
		for _, v := range layer.Polygon {
			p := orb.Point{v[0], v[1]}
			if first {
				bound = orb.Bound{Min: p, Max: p}
				first = false
			} else {
				bound = bound.Extend(p)
			}
		}
	}
	if first {
		return orb.Bound{}, fmt.Errorf("render: layers contain no coordinates")
	}
	return bound, nil
}

func pad(b orb.Bound, ratio float64) orb.Bound {
	dx := (b.Max[0] - b.Min[0]) * ratio
	dy := (b.Max[1] - b.Min[1]) * ratio
	if dx == 0 {
		dx = 0.001
	}
	if dy == 0 {
		dy = 0.001
	}
	return orb.Bound{
		Min: orb.Point{b.Min[0] - dx, b.Min[1] - dy},
		Max: orb.Point{b.Max[0] + dx, b.Max[1] + dy},
	}
}
