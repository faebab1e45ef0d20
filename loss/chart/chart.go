// Package chart draws blocking probability against offered load, one line
// per traffic class, with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/inference-sim/multirate-loss/loss"
)

// Default image size.
const (
	DefaultWidth  = 16 * vg.Centimeter
	DefaultHeight = 10 * vg.Centimeter
)

// Series is the curve of one traffic class.
type Series struct {
	Label string
	XYs   plotter.XYs
}

// BuildSeries extracts one curve per class from points. With logScale,
// points whose blocking is zero are left out since they have no logarithm.
func BuildSeries(sys loss.System, points []loss.LoadPoint, logScale bool) []Series {
	series := make([]Series, len(sys.Classes))
	for i, cl := range sys.Classes {
		xys := make(plotter.XYs, 0, len(points))
		for _, pt := range points {
			if i >= len(pt.Blocking) {
				continue
			}
			e := pt.Blocking[i]
			if logScale && e <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: pt.Load, Y: e})
		}
		series[i] = Series{Label: fmt.Sprintf("Stream %d, t=%d", i+1, cl.Demand), XYs: xys}
	}
	return series
}

// BlockingChart builds the chart for a sweep.
func BlockingChart(sys loss.System, points []loss.LoadPoint, logScale bool) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, errors.New("no load points to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Blocking probability for a system with capacity %d", sys.Capacity)
	p.X.Label.Text = "Offered traffic per unit capacity"
	p.Y.Label.Text = "Blocking probability"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, s := range BuildSeries(sys, points, logScale) {
		if len(s.XYs) == 0 {
			continue
		}
		line, err := plotter.NewLine(s.XYs)
		if err != nil {
			return nil, fmt.Errorf("building series %q: %w", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(s.Label, line)
		for _, xy := range s.XYs {
			minY = math.Min(minY, xy.Y)
			maxY = math.Max(maxY, xy.Y)
		}
	}

	if logScale {
		if math.IsInf(minY, 1) {
			return nil, errors.New("no positive blocking probabilities to plot on a log scale")
		}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		// A flat curve would otherwise be widened to include 0.
		if minY == maxY {
			p.Y.Min, p.Y.Max = minY/10, maxY*10
		}
	}
	return p, nil
}

// Save renders the chart to path; the extension (png, svg, pdf, ...) picks the format.
func Save(path string, sys loss.System, points []loss.LoadPoint, logScale bool, width, height vg.Length) error {
	p, err := BlockingChart(sys, points, logScale)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}
