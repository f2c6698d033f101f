package fractal

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WritePlot renders the log-log diagnostic plot for an estimate:
// periodogram points and the fitted spectral slope.
func WritePlot(est *Estimate, path string) error {
	if len(est.LogFreq) == 0 {
		return fmt.Errorf("fractal: estimate carries no periodogram data to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Spectral fractal estimate (D = %.3f)", est.Dimension)
	p.X.Label.Text = "log10 frequency"
	p.Y.Label.Text = "log10 power"

	pts := make(plotter.XYs, len(est.LogFreq))
	minF, maxF := est.LogFreq[0], est.LogFreq[0]
	for i := range est.LogFreq {
		pts[i].X = est.LogFreq[i]
		pts[i].Y = est.LogPower[i]
		if est.LogFreq[i] < minF {
			minF = est.LogFreq[i]
		}
		if est.LogFreq[i] > maxF {
			maxF = est.LogFreq[i]
		}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("fractal: failed to build scatter: %w", err)
	}
	scatter.Radius = vg.Points(1.5)
	p.Add(scatter)

	fit := plotter.XYs{
		{X: minF, Y: est.Intercept + est.Slope*minF},
		{X: maxF, Y: est.Intercept + est.Slope*maxF},
	}
	line, err := plotter.NewLine(fit)
	if err != nil {
		return fmt.Errorf("fractal: failed to build fit line: %w", err)
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("fractal: failed to save plot: %w", err)
	}
	return nil
}
