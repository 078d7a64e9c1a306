package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/user/schedviz/internal/canvas"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg" // png
	_ "gonum.org/v1/plot/vg/vgsvg" // svg
)

// maxAxisLabels caps the number of labeled ticks on a categorical axis.
const maxAxisLabels = 12

// GonumDrawer draws charts with gonum/plot.
type GonumDrawer struct{}

func (GonumDrawer) Name() string { return BackendGonum }

// Draw implements Drawer.
func (g GonumDrawer) Draw(spec Spec, opts DrawOptions) (canvas.Image, error) {
	opts = opts.withDefaults()
	if len(spec.Datasets) == 0 {
		return canvas.Image{}, fmt.Errorf("no datasets to plot for: %s", spec.Title)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XAxis.Title
	p.Y.Label.Text = spec.YAxis.Title

	var err error
	switch spec.Kind {
	case KindHorizontalBar:
		err = addGonumGantt(p, spec)
	case KindBar:
		err = addGonumBars(p, spec, opts)
	case KindLine:
		err = addGonumLines(p, spec)
	default:
		err = fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return canvas.Image{}, err
	}

	if spec.YAxis.BeginAtZero && p.Y.Min > 0 {
		p.Y.Min = 0
	}
	return writeGonumImage(p, opts)
}

func writeGonumImage(p *plot.Plot, opts DrawOptions) (canvas.Image, error) {
	// vgimg renders at 96 dpi
	w := vg.Length(opts.Width) * vg.Inch / 96
	h := vg.Length(opts.Height) * vg.Inch / 96

	writer, err := p.WriterTo(w, h, opts.Format)
	if err != nil {
		return canvas.Image{}, fmt.Errorf("failed to create plot writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return canvas.Image{}, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return canvas.Image{Format: opts.Format, Data: buf.Bytes(), Width: opts.Width, Height: opts.Height}, nil
}

func addGonumGantt(p *plot.Plot, spec Spec) error {
	ds := spec.Datasets[0]
	n := len(ds.Ranges)
	if n == 0 {
		return fmt.Errorf("no time slices to plot for: %s", spec.Title)
	}

	bars := &ganttBars{
		ranges:    ds.Ranges,
		colors:    make([]color.Color, n),
		thickness: ds.BarPercentage,
	}
	if bars.thickness <= 0 {
		bars.thickness = 0.8
	}
	// The first record sits on the top row.
	names := make([]string, n)
	for i := range ds.Ranges {
		bars.colors[i] = ds.ColorAt(i)
		if i < len(spec.Labels) {
			names[n-1-i] = spec.Labels[i]
		}
	}

	p.Add(bars, plotter.NewGrid())
	p.NominalY(names...)
	return nil
}

func addGonumBars(p *plot.Plot, spec Spec, opts DrawOptions) error {
	n := len(spec.Datasets[0].Values)
	if n == 0 {
		return fmt.Errorf("no values to plot for: %s", spec.Title)
	}

	// Leave room for the axes, then split what remains between the bars.
	plotWidth := max(vg.Length(opts.Width)*vg.Inch/96-vg.Inch, vg.Inch)
	width := plotWidth / vg.Length(n*len(spec.Datasets)+1) * 0.8

	for i, ds := range spec.Datasets {
		bars, err := plotter.NewBarChart(plotter.Values(ds.Values), width)
		if err != nil {
			return fmt.Errorf("failed to create bar chart for %s: %w", spec.Title, err)
		}
		bars.Color = ds.ColorAt(0)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(i) * width
		p.Add(bars)
		if spec.ShowLegend {
			p.Legend.Add(ds.Label, bars)
		}
	}
	p.Legend.Top = true
	p.X.Tick.Marker = nominalTicks(spec.Labels)
	return nil
}

func addGonumLines(p *plot.Plot, spec Spec) error {
	for _, ds := range spec.Datasets {
		if len(ds.Values) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(ds.Values))
		for i, v := range ds.Values {
			pts[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to create line for %s: %w", spec.Title, err)
		}
		line.Color = ds.ColorAt(0)
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		if spec.ShowLegend {
			p.Legend.Add(ds.Label, line)
		}
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = nominalTicks(spec.Labels)
	return nil
}

// nominalTicks labels category i at x = i, thinning labels so that at most
// maxAxisLabels are printed.
func nominalTicks(labels []string) plot.ConstantTicks {
	step := int(math.Ceil(float64(len(labels)) / maxAxisLabels))
	if step < 1 {
		step = 1
	}
	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i)}
		if i%step == 0 {
			ticks[i].Label = l
		}
	}
	return ticks
}

// ganttBars draws floating horizontal bars, row i at y = n-1-i.
type ganttBars struct {
	ranges    []Range
	colors    []color.Color
	thickness float64 // in row units
}

// Plot implements plot.Plotter.
func (g *ganttBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	n := len(g.ranges)
	for i, r := range g.ranges {
		row := float64(n - 1 - i)
		x0, x1 := trX(r.Start), trX(r.End)
		y0, y1 := trY(row-g.thickness/2), trY(row+g.thickness/2)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(g.colors[i], c.ClipPolygonXY(pts))
	}
}

// DataRange implements plot.DataRanger.
func (g *ganttBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, r := range g.ranges {
		xmin = math.Min(xmin, r.Start)
		xmax = math.Max(xmax, r.End)
	}
	return xmin, xmax, -0.5, float64(len(g.ranges)) - 0.5
}
