// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ChartOptions control how a plot is rasterised.
type ChartOptions struct {
	Width, Height vg.Length
	DPI           int
}

// DefaultChartOptions draws a 10in by 6in chart at 100 dpi.
var DefaultChartOptions = ChartOptions{Width: 10 * vg.Inch, Height: 6 * vg.Inch, DPI: 100}

const pointRad = 3

// TimesPlot returns a line chart of the time per run of each
// benchmark across the versions of t.
func TimesPlot(t *Table) (*plot.Plot, error) {
	p := newPlot(t.Versions)
	p.Title.Text = "Benchmark times over commits"
	p.Y.Label.Text = "Avg time/run (s)"
	if err := addSeries(p, t); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangesPlot returns a line chart of the percent change of each
// benchmark relative to the preceding version, with a dashed line
// at zero. The first version of t has no change and is not shown.
func ChangesPlot(t *Table) (*plot.Plot, error) {
	ch := t.Changes()
	p := newPlot(ch.Versions)
	p.Title.Text = "Benchmark improvements per commit"
	p.Y.Label.Text = "Change relative to previous (%)"

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Gray{0x80}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	if err := addSeries(p, ch); err != nil {
		return nil, err
	}

	// Keep the zero line on the chart.
	if p.Y.Min > 0 {
		p.Y.Min = 0
	}
	if p.Y.Max < 0 {
		p.Y.Max = 0
	}
	return p, nil
}

func newPlot(versions []string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = "Commit"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	if len(versions) > 0 {
		p.NominalX(versions...)
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop
	return p
}

// addSeries adds one line per benchmark of t, with X the version
// index. Lines are broken at missing cells, and benchmarks with no
// cells are left out.
func addSeries(p *plot.Plot, t *Table) error {
	n := 0
	for _, bench := range t.Benchmarks {
		if t.present(bench) == 0 {
			continue
		}
		clr := plotutil.Color(n)
		shape := plotutil.Shape(n)
		n++

		inLegend := false
		for _, pts := range segments(t.Row(bench)) {
			l, s, err := plotter.NewLinePoints(pts)
			if err != nil {
				return err
			}
			l.Color = clr
			s.Color = clr
			s.Shape = shape
			s.Radius = vg.Points(pointRad)
			p.Add(l, s)
			if !inLegend {
				p.Legend.Add(bench, l, s)
				inLegend = true
			}
		}
	}
	return nil
}

// segments splits row into runs of consecutive non-NaN values.
func segments(row []float64) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for x, y := range row {
		if math.IsNaN(y) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(x), Y: y})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// WritePNG rasterises p and writes it to w in PNG format.
func WritePNG(w io.Writer, p *plot.Plot, opts ChartOptions) error {
	c := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI), vgimg.UseBackgroundColor(color.White))
	p.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

// SavePNG writes p to the PNG file path, replacing any existing file.
func SavePNG(p *plot.Plot, path string, opts ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, p, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
