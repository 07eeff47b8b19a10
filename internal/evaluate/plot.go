package evaluate

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Caseyio/federal-bid-prediction/internal/common/fsutil"
)

// PlotPredictions writes a predicted-vs-actual scatter of the held-out rows
// in log1p space, with the y = x reference line. The format follows the
// extension of path (.png, .svg, .pdf).
func PlotPredictions(path string, yTrue, yPred []float64, r Report) error {
	if err := checkPair(yTrue, yPred); err != nil {
		return err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("plot: unsupported format %q", filepath.Ext(path))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Held-out awards (RMSE %.3f, R² %.3f)", r.LogRMSE, r.LogR2)
	p.X.Label.Text = "Actual log1p(award_amount)"
	p.Y.Label.Text = "Predicted log1p(award_amount)"

	pts := make(plotter.XYs, len(yTrue))
	for i := range yTrue {
		pts[i].X = yTrue[i]
		pts[i].Y = yPred[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	s.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(s)

	lo := min(floats.Min(yTrue), floats.Min(yPred))
	hi := max(floats.Max(yTrue), floats.Max(yPred))
	l, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(l)
	p.Legend.Add("test rows", s)
	p.Legend.Add("y = x", l)
	p.Legend.Top = true
	p.Legend.Left = true

	wt, err := p.WriterTo(5*vg.Inch, 5*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("plot: render: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
