// Package render draws charts of FoldLogData.
package render

import (
	"io"
	"strings"

	"github.com/opst/confusionflow/pkg/confmat"
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/runlog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Formats which Write accepts.
var Formats = []string{"png", "svg", "pdf"}

const (
	DefaultWidth  = 16 * vg.Centimeter
	DefaultHeight = 10 * vg.Centimeter
)

// Accuracy returns (epochId, accuracy) points, in order of epochdata.
func Accuracy(data runlog.FoldLogDataDetail) (plotter.XYs, error) {
	xys := make(plotter.XYs, 0, len(data.EpochData))
	for _, e := range data.EpochData {
		cm, err := confmat.FromFlat(e.Confmat)
		if err != nil {
			return nil, xe.WrapWithNote(data.FoldLogId, err)
		}
		xys = append(xys, plotter.XY{X: float64(e.EpochId), Y: cm.Accuracy()})
	}
	return xys, nil
}

// AccuracyChart plots accuracy of each FoldLogData over epochs, one line for each.
//
// FoldLogData without epochs are skipped. When nothing remains, it fails.
func AccuracyChart(title string, data ...runlog.FoldLogDataDetail) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "accuracy"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	drawn := 0
	for nth, d := range data {
		if len(d.EpochData) == 0 {
			continue
		}
		xys, err := Accuracy(d)
		if err != nil {
			return nil, err
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, xe.WrapWithNote(d.FoldLogId, err)
		}
		line.Color = plotutil.Color(nth)
		points.Color = plotutil.Color(nth)
		points.Shape = plotutil.Shape(nth)
		p.Add(line, points)
		p.Legend.Add(d.FoldLogId, line, points)
		drawn += 1
	}
	if drawn == 0 {
		return nil, xe.New("no epochs to plot")
	}
	return p, nil
}

// Write renders the plot in the format ("png", "svg" or "pdf").
func Write(w io.Writer, p *plot.Plot, format string, width, height vg.Length) error {
	format = strings.ToLower(format)
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return xe.WrapWithNote("unsupported format: "+format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return xe.Wrap(err)
	}
	return nil
}
