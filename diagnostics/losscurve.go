// Package diagnostics renders training diagnostics, currently per-epoch
// loss curves, using gonum/plot.
package diagnostics

import (
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sgdkit/sgdkit/pkg/errors"
)

// LossCurvePlot builds a line plot of mean training loss against epoch.
// Multiple named curves share the axes, so optimizer or hyperparameter
// runs can be compared on one figure.
func LossCurvePlot(title string, curves map[string][]float64) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.NewValueError("LossCurvePlot", "no curves supplied")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "mean loss"
	p.Add(plotter.NewGrid())

	// Sort the names so colours and legend order are stable.
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		losses := curves[name]
		if len(losses) == 0 {
			return nil, errors.NewValueError("LossCurvePlot", "empty curve: "+name)
		}
		xys := make(plotter.XYs, len(losses))
		for j, loss := range losses {
			xys[j].X = float64(j + 1)
			xys[j].Y = loss
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrap(err, "LossCurvePlot")
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// WritePNG renders the plot as a PNG of the given size in inches.
func WritePNG(p *plot.Plot, w io.Writer, width, height float64) error {
	writer, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "WritePNG")
	}
	if _, err := writer.WriteTo(w); err != nil {
		return errors.Wrap(err, "WritePNG")
	}
	return nil
}

// SaveLossCurve plots a single curve and writes it to path. The image
// format is chosen from the file extension.
func SaveLossCurve(losses []float64, title, path string) error {
	p, err := LossCurvePlot(title, map[string][]float64{"train": losses})
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "SaveLossCurve")
	}
	return nil
}
