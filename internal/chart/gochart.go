package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/user/schedviz/internal/canvas"
)

// GoChartDrawer draws charts with wcharczuk/go-chart.
type GoChartDrawer struct{}

func (GoChartDrawer) Name() string { return BackendGoChart }

// Draw implements Drawer.
func (g GoChartDrawer) Draw(spec Spec, opts DrawOptions) (canvas.Image, error) {
	opts = opts.withDefaults()
	if len(spec.Datasets) == 0 {
		return canvas.Image{}, fmt.Errorf("no datasets to plot for: %s", spec.Title)
	}

	provider := gochart.PNG
	if opts.Format == canvas.FormatSVG {
		provider = gochart.SVG
	}

	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case KindHorizontalBar:
		err = goChartGantt(spec, opts).Render(provider, &buf)
	case KindBar:
		err = goChartBars(spec, opts).Render(provider, &buf)
	case KindLine:
		err = goChartLines(spec, opts).Render(provider, &buf)
	default:
		err = fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return canvas.Image{}, fmt.Errorf("failed to render %s: %w", spec.Title, err)
	}
	return canvas.Image{Format: opts.Format, Data: buf.Bytes(), Width: opts.Width, Height: opts.Height}, nil
}

func goChartBackground() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// goChartGantt draws each time slice as a thick two-point series on its own row.
func goChartGantt(spec Spec, opts DrawOptions) gochart.Chart {
	ds := spec.Datasets[0]
	n := len(ds.Ranges)

	percentage := ds.BarPercentage
	if percentage <= 0 {
		percentage = 0.8
	}
	thickness := math.Max(2, float64(opts.Height-120)/float64(max(n, 1))*percentage)

	xmin, xmax := math.Inf(1), math.Inf(-1)
	series := make([]gochart.Series, 0, n)
	rowLabels := make([]string, n)
	for i, r := range ds.Ranges {
		row := float64(n - 1 - i)
		xmin = math.Min(xmin, r.Start)
		xmax = math.Max(xmax, r.End)

		label := ""
		if i < len(spec.Labels) {
			label = spec.Labels[i]
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    label,
			XValues: []float64{r.Start, r.End},
			YValues: []float64{row, row},
			Style: gochart.Style{
				StrokeColor: drawingColor(ds.ColorAt(i)),
				StrokeWidth: thickness,
			},
		})
		rowLabels[n-1-i] = label
	}
	if xmin == xmax {
		xmax = xmin + 1
	}

	return gochart.Chart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: goChartBackground(),
		XAxis: gochart.XAxis{
			Name:  spec.XAxis.Title,
			Range: &gochart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YAxis.Title,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: goChartCategoryTicks(rowLabels, n),
		},
		Series: series,
	}
}

func goChartBars(spec Spec, opts DrawOptions) gochart.BarChart {
	ds := spec.Datasets[0]
	n := max(len(ds.Values), 1)

	fill := drawingColor(ds.ColorAt(0))
	bars := make([]gochart.Value, len(ds.Values))
	top := 0.0
	for i, v := range ds.Values {
		label := ""
		if i < len(spec.Labels) {
			label = spec.Labels[i]
		}
		bars[i] = gochart.Value{
			Value: v,
			Label: label,
			Style: gochart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
		top = math.Max(top, v)
	}
	if top == 0 {
		top = 1
	}

	barWidth := max((opts.Width-120)/(2*n), 4)
	return gochart.BarChart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: goChartBackground(),
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		YAxis: gochart.YAxis{
			Name:  spec.YAxis.Title,
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
}

func goChartLines(spec Spec, opts DrawOptions) gochart.Chart {
	series := make([]gochart.Series, 0, len(spec.Datasets))
	ymin, ymax := math.Inf(1), math.Inf(-1)
	count := 0
	for _, ds := range spec.Datasets {
		xs := make([]float64, len(ds.Values))
		for i, v := range ds.Values {
			xs[i] = float64(i)
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
		count = max(count, len(ds.Values))
		series = append(series, gochart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ds.Values,
			Style: gochart.Style{
				StrokeColor: drawingColor(ds.ColorAt(0)),
				StrokeWidth: 2,
			},
		})
	}
	if spec.YAxis.BeginAtZero || math.IsInf(ymin, 0) {
		ymin = math.Min(0, ymin)
	}
	if math.IsInf(ymax, 0) || ymax <= ymin {
		ymax = ymin + 1
	}

	count = max(count, 1)
	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: goChartBackground(),
		XAxis: gochart.XAxis{
			Name:  spec.XAxis.Title,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(count) - 0.5},
			Ticks: goChartCategoryTicks(spec.Labels, count),
		},
		YAxis: gochart.YAxis{
			Name:  spec.YAxis.Title,
			Range: &gochart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: series,
	}
	if spec.ShowLegend {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	return ch
}

// goChartCategoryTicks places category i at i, labeled like nominalTicks,
// between two unlabeled ticks half a category outside the data. go-chart
// takes the axis range from the ticks whenever any are set, so the edge ticks
// keep the range at [-0.5, count-0.5] even for a single category.
func goChartCategoryTicks(labels []string, count int) []gochart.Tick {
	count = max(count, len(labels), 1)
	padded := make([]string, count)
	copy(padded, labels)

	ticks := make([]gochart.Tick, 0, count+2)
	ticks = append(ticks, gochart.Tick{Value: -0.5})
	for _, t := range nominalTicks(padded) {
		ticks = append(ticks, gochart.Tick{Value: t.Value, Label: t.Label})
	}
	return append(ticks, gochart.Tick{Value: float64(count) - 0.5})
}

func drawingColor(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
