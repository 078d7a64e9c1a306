package chart

import (
	"image/color"

	"github.com/user/schedviz/internal/canvas"
)

// Kind is the chart type.
type Kind string

const (
	KindBar           Kind = "bar"
	KindHorizontalBar Kind = "horizontal-bar"
	KindLine          Kind = "line"
)

// AxisPosition places an axis relative to the plot area.
type AxisPosition string

const (
	PositionTop    AxisPosition = "top"
	PositionBottom AxisPosition = "bottom"
	PositionLeft   AxisPosition = "left"
)

// Axis describes one chart axis.
type Axis struct {
	Title       string
	Position    AxisPosition
	BeginAtZero bool
}

// Range is a floating bar spanning [Start, End] on the value axis.
type Range struct {
	Start float64
	End   float64
}

// Dataset is one labeled series of a chart. Values drive bar and line charts,
// Ranges drive floating (Gantt) bars.
type Dataset struct {
	Label         string
	Values        []float64
	Ranges        []Range
	Colors        []color.Color // one per element, or a single color for all
	Tooltips      [][]string
	Tension       float64
	BarPercentage float64
}

// Len returns the number of elements in the dataset.
func (d Dataset) Len() int {
	if len(d.Ranges) > 0 {
		return len(d.Ranges)
	}
	return len(d.Values)
}

// ColorAt returns the color of element i.
func (d Dataset) ColorAt(i int) color.Color {
	switch {
	case len(d.Colors) == 0:
		return color.Black
	case len(d.Colors) == 1:
		return d.Colors[0]
	case i < len(d.Colors):
		return d.Colors[i]
	}
	return d.Colors[len(d.Colors)-1]
}

// Spec is the declarative description of a chart handed to a Library.
type Spec struct {
	Panel      Panel
	Kind       Kind
	Title      string
	Labels     []string
	Datasets   []Dataset
	XAxis      Axis
	YAxis      Axis
	ShowLegend bool
}

// Tooltips flattens the per-element tooltip text of every dataset.
func (s Spec) Tooltips() []canvas.Tooltip {
	var out []canvas.Tooltip
	for _, ds := range s.Datasets {
		for i, lines := range ds.Tooltips {
			label := ds.Label
			if i < len(s.Labels) {
				label = s.Labels[i]
			}
			out = append(out, canvas.Tooltip{Label: label, Lines: lines})
		}
	}
	return out
}
