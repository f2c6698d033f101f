package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // some tile servers serve JPEG tiles
	_ "image/png"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/movetrace/homerange-backend-go/internal/metrics"
)

// DefaultTileURL is the slippy-tile URL template used when none is configured
const DefaultTileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"

const tileSize = 256

// TileFetcher fetches slippy basemap tiles over HTTP.
// Fetch failures are best-effort: callers fall back to a plain background.
type TileFetcher struct {
	URLTemplate string
	UserAgent   string
	Retries     int
	Client      *http.Client
}

// NewTileFetcher builds a fetcher with sane timeouts and retry count
func NewTileFetcher(urlTemplate string) *TileFetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultTileURL
	}
	return &TileFetcher{
		URLTemplate: urlTemplate,
		UserAgent:   "homerange-backend/1.0",
		Retries:     2,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// LonLatToPixel converts a lon/lat pair into global Web-Mercator pixel
// coordinates at the given zoom level (256 px tiles)
func LonLatToPixel(lon, lat float64, zoom int) (float64, float64) {
	scale := float64(int(1)<<uint(zoom)) * tileSize
	x := (lon + 180) / 360 * scale

	latRad := lat * math.Pi / 180
	y := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * scale

	return x, y
}

// ZoomFor picks the highest zoom at which the bound fits into maxPx pixels
// on both axes
func ZoomFor(bound orb.Bound, maxPx float64) int {
	for zoom := 19; zoom >= 1; zoom-- {
		x0, y0 := LonLatToPixel(bound.Min[0], bound.Max[1], zoom)
		x1, y1 := LonLatToPixel(bound.Max[0], bound.Min[1], zoom)
		if x1-x0 <= maxPx && y1-y0 <= maxPx {
			return zoom
		}
	}
	return 1
}

// Compose fetches every tile intersecting the bound at the given zoom and
// assembles them into a single image. The returned origin is the global
// pixel coordinate of the image's top-left corner.
func (f *TileFetcher) Compose(ctx context.Context, bound orb.Bound, zoom int) (*image.RGBA, float64, float64, error) {
	x0, y0 := LonLatToPixel(bound.Min[0], bound.Max[1], zoom)
	x1, y1 := LonLatToPixel(bound.Max[0], bound.Min[1], zoom)

	tx0 := int(math.Floor(x0 / tileSize))
	ty0 := int(math.Floor(y0 / tileSize))
	tx1 := int(math.Floor(x1 / tileSize))
	ty1 := int(math.Floor(y1 / tileSize))

	maxIndex := (1 << uint(zoom)) - 1

	canvas := image.NewRGBA(image.Rect(0, 0, (tx1-tx0+1)*tileSize, (ty1-ty0+1)*tileSize))

	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			if tx < 0 || ty < 0 || tx > maxIndex || ty > maxIndex {
				continue
			}
			tile, err := f.fetchTile(ctx, zoom, tx, ty)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("tile %d/%d/%d: %w", zoom, tx, ty, err)
			}
			offset := image.Pt((tx-tx0)*tileSize, (ty-ty0)*tileSize)
			draw.Draw(canvas, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(tileSize, tileSize))}, tile, image.Point{}, draw.Src)
		}
	}

	return canvas, float64(tx0 * tileSize), float64(ty0 * tileSize), nil
}

func (f *TileFetcher) fetchTile(ctx context.Context, zoom, tx, ty int) (image.Image, error) {
	url := strings.NewReplacer(
		"{z}", fmt.Sprintf("%d", zoom),
		"{x}", fmt.Sprintf("%d", tx),
		"{y}", fmt.Sprintf("%d", ty),
	).Replace(f.URLTemplate)

	var lastErr error
	for attempt := 0; attempt <= f.Retries; attempt++ {
		if attempt > 0 {
			log.Printf("[TileFetcher] Retrying %s (attempt %d)", url, attempt+1)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", f.UserAgent)

		resp, err := f.Client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			continue
		}

		img, _, err := image.Decode(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return img, nil
	}

	metrics.TileFetchFailures.Inc()
	return nil, lastErr
}
