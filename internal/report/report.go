// Package report summarizes a run's loss history and renders it as a plot.
package report

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNoHistory is returned when there are no epochs to report on.
var ErrNoHistory = errors.New("report: empty loss history")

// Default plot size.
const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// Summary describes a loss history. Epochs are 1-based.
type Summary struct {
	Epochs    int
	First     float64
	Last      float64
	Best      float64
	BestEpoch int
	Mean      float64
}

// Improvement returns First - Last.
func (s Summary) Improvement() float64 {
	return s.First - s.Last
}

// String formats the summary for the run log.
func (s Summary) String() string {
	return fmt.Sprintf("epochs=%d first=%.4f last=%.4f best=%.4f@%d mean=%.4f",
		s.Epochs, s.First, s.Last, s.Best, s.BestEpoch, s.Mean)
}

// Summarize computes a Summary of per-epoch losses.
func Summarize(losses []float32) (Summary, error) {
	if len(losses) == 0 {
		return Summary{}, ErrNoHistory
	}
	xs := toFloat64(losses)
	best := floats.MinIdx(xs)
	return Summary{
		Epochs:    len(xs),
		First:     xs[0],
		Last:      xs[len(xs)-1],
		Best:      xs[best],
		BestEpoch: best + 1,
		Mean:      floats.Sum(xs) / float64(len(xs)),
	}, nil
}

// NewLossPlot builds a line plot of loss against epoch.
func NewLossPlot(losses []float32) (*plot.Plot, error) {
	if len(losses) == 0 {
		return nil, ErrNoHistory
	}

	pts := make(plotter.XYs, len(losses))
	for i, v := range losses {
		pts[i].X = float64(i + 1)
		pts[i].Y = float64(v)
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Summed loss"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("report: loss line: %w", err)
	}
	line.Width = vg.Points(2)
	line.Color = plotutil.Color(0)
	p.Add(line)
	p.Legend.Add("loss", line)

	return p, nil
}

// WriteLossPlot saves the loss curve to path. The image format follows the
// file extension (.svg, .png, .pdf, ...).
func WriteLossPlot(path string, losses []float32) error {
	p, err := NewLossPlot(losses)
	if err != nil {
		return err
	}
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

// WriteLossPlotTo renders the loss curve in format ("svg", "png", ...) to w.
func WriteLossPlotTo(w io.Writer, format string, losses []float32) error {
	p, err := NewLossPlot(losses)
	if err != nil {
		return err
	}
	writer, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return fmt.Errorf("report: %s writer: %w", format, err)
	}
	_, err = writer.WriteTo(w)
	return err
}

func toFloat64(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}
	return out
}
