// Package trajviz renders a solved trajectory.Profile's p(t), v(t) and
// a(t) curves to a PNG, in the same plot.New/plotter.NewLine/Save shape
// the retrieval pack's ODE/PDE simulation examples use for their own
// time-series plots.
package trajviz

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"motiongen/pkg/trajectory"
)

// samplesPerProfile is the resolution used to render a Profile's curves;
// enough to show every segment boundary as a visible kink without making
// the PNG unreasonably large.
const samplesPerProfile = 400

// PlotProfile samples p, v, a for duration seconds of a single-DoF profile
// and writes a single plot (one line per quantity, a shared time axis,
// distinct colors) to path as a PNG.
func PlotProfile(p *trajectory.Profile, duration float64, path string) error {
	if duration <= 0 {
		return errors.New("trajviz: duration must be positive")
	}

	posPts := make(plotter.XYs, samplesPerProfile)
	velPts := make(plotter.XYs, samplesPerProfile)
	accPts := make(plotter.XYs, samplesPerProfile)

	step := duration / float64(samplesPerProfile-1)
	for i := 0; i < samplesPerProfile; i++ {
		t := float64(i) * step
		pos, vel, acc := SampleProfile(p, t)
		posPts[i] = plotter.XY{X: t, Y: pos}
		velPts[i] = plotter.XY{X: t, Y: vel}
		accPts[i] = plotter.XY{X: t, Y: acc}
	}

	plt := plot.New()
	plt.Title.Text = "Trajectory profile"
	plt.X.Label.Text = "time (s)"
	plt.Y.Label.Text = "value"

	if err := addLine(plt, "position", posPts, color.RGBA{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}); err != nil {
		return errors.Wrap(err, "trajviz: position line")
	}
	if err := addLine(plt, "velocity", velPts, color.RGBA{R: 0xd9, G: 0x7a, B: 0x00, A: 0xff}); err != nil {
		return errors.Wrap(err, "trajviz: velocity line")
	}
	if err := addLine(plt, "acceleration", accPts, color.RGBA{R: 0x3a, G: 0x9a, B: 0x3a, A: 0xff}); err != nil {
		return errors.Wrap(err, "trajviz: acceleration line")
	}

	if err := plt.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "trajviz: save png")
	}
	return nil
}

func addLine(plt *plot.Plot, name string, pts plotter.XYs, c color.Color) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = c
	plt.Add(line)
	plt.Legend.Add(name, line)
	return nil
}

// SampleProfile evaluates a profile at trajectory-relative time t using
// the same brake/main-segment walk as trajectory.Trajectory.AtTime, but for
// a single detached Profile (useful for plotting a Step1/Step2 candidate
// before it's wrapped into a full Trajectory).
func SampleProfile(p *trajectory.Profile, t float64) (pos, vel, acc float64) {
	return p.At(t)
}
