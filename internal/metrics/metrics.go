package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters for pipeline activity. Registered on the default registry and
// exposed via Handler.
var (
	ImportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homerange_imports_total",
		Help: "Number of GPX import runs.",
	})

	PointsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homerange_points_imported_total",
		Help: "Number of track points written to storage.",
	})

	EstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homerange_estimates_total",
		Help: "Number of home-range estimates computed, by estimator.",
	}, []string{"estimator"})

	FractalRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homerange_fractal_runs_total",
		Help: "Number of fractal-dimension estimates computed.",
	})

	TileFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homerange_tile_fetch_failures_total",
		Help: "Number of basemap tile fetches that failed after retries.",
	})
)

// Handler returns the Prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}
