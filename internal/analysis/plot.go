package analysis

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotMassRadius writes a log-log mass-radius chart with its fitted line to
// path. The image format follows the file extension.
func PlotMassRadius(samples []Sample, fit Fit, title, path string) error {
	pts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		if s.Radius <= 0 || s.Mass <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: math.Log(s.Radius), Y: math.Log(float64(s.Mass))})
	}
	if len(pts) == 0 {
		return fmt.Errorf("plot %s: %w", path, ErrInsufficientData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "log r"
	p.Y.Label.Text = "log M(r)"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 200, G: 60, B: 40, A: 255}
	p.Add(scatter)
	p.Legend.Add("M(r)", scatter)

	first, last := pts[0].X, pts[len(pts)-1].X
	fitPts := plotter.XYs{
		{X: first, Y: fit.Intercept + fit.Dimension*first},
		{X: last, Y: fit.Intercept + fit.Dimension*last},
	}
	line, err := plotter.NewLine(fitPts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 200, A: 255}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("D = %.3f", fit.Dimension), line)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save mass-radius plot: %w", err)
	}
	return nil
}
