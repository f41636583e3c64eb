package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writeMassChart plots total mass against frame index. The output format
// follows the file extension.
func writeMassChart(path string, masses []float64) error {
	pts := make(plotter.XYs, len(masses))
	for i, m := range masses {
		pts[i].X = float64(i)
		pts[i].Y = m
	}

	p := plot.New()
	p.Title.Text = "Total mass"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "mass"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building mass line: %w", err)
	}
	p.Add(line)

	if err := p.Save(chartWidthInches*vg.Inch, chartHeightInches*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %q: %w", path, err)
	}
	return nil
}
