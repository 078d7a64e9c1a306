package chart

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/user/schedviz/internal/models"
	"github.com/user/schedviz/pkg/histogram"
)

var (
	histogramColor    = color.NRGBA{R: 75, G: 192, B: 192, A: 153}
	energyColor       = color.NRGBA{R: 255, G: 159, B: 64, A: 255}
	distributionColor = color.NRGBA{R: 153, G: 102, B: 255, A: 255}
)

// GanttTooltip returns the hover text of one time slice.
func GanttTooltip(ts models.TimeSlice) []string {
	return []string{
		fmt.Sprintf("Time: %.2f - %.2f ms", ts.Start, ts.End()),
		fmt.Sprintf("Frequency: %.2f GHz", ts.Frequency),
	}
}

// Gantt builds one horizontal bar per time slice, in input order from the top.
func Gantt(data []models.TimeSlice) Spec {
	n := len(data)
	ds := Dataset{
		Label:         "Time Slices",
		Ranges:        make([]Range, n),
		Colors:        make([]color.Color, n),
		Tooltips:      make([][]string, n),
		BarPercentage: 0.8,
	}
	labels := make([]string, n)
	for i, d := range data {
		labels[i] = fmt.Sprintf("P%d", d.PID)
		ds.Ranges[i] = Range{Start: d.Start, End: d.End()}
		ds.Colors[i] = WheelColor(i, n)
		ds.Tooltips[i] = GanttTooltip(d)
	}

	return Spec{
		Panel:    PanelGantt,
		Kind:     KindHorizontalBar,
		Title:    "Process Timeline",
		Labels:   labels,
		Datasets: []Dataset{ds},
		XAxis:    Axis{Title: "Time (ms)", Position: PositionTop},
		YAxis:    Axis{Title: "Process", Position: PositionLeft},
	}
}

// FrequencyHistogram builds a bar per histogram bin.
func FrequencyHistogram(h histogram.Histogram) Spec {
	values := make([]float64, len(h.Bins))
	for i, b := range h.Bins {
		values[i] = float64(b.Count)
	}

	return Spec{
		Panel:  PanelFrequencyHistogram,
		Kind:   KindBar,
		Title:  "CPU Frequency Histogram",
		Labels: h.Labels(),
		Datasets: []Dataset{{
			Label:  "Frequency Distribution",
			Values: values,
			Colors: []color.Color{histogramColor},
		}},
		YAxis:      Axis{Title: "Count", Position: PositionLeft, BeginAtZero: true},
		ShowLegend: true,
	}
}

// Energy builds a single line of energy over simulated time. The x axis is
// categorical: each sample gets one slot labeled with its time.
func Energy(data []models.EnergySample) Spec {
	labels := make([]string, len(data))
	values := make([]float64, len(data))
	for i, d := range data {
		labels[i] = fmt.Sprintf("%.1f", d.Time)
		values[i] = d.Energy
	}

	return Spec{
		Panel:  PanelEnergy,
		Kind:   KindLine,
		Title:  "Energy Consumption",
		Labels: labels,
		Datasets: []Dataset{{
			Label:   "Energy Consumption",
			Values:  values,
			Colors:  []color.Color{energyColor},
			Tension: 0.1,
		}},
		XAxis:      Axis{Title: "Time (ms)", Position: PositionBottom},
		YAxis:      Axis{Title: "Energy (units)", Position: PositionLeft, BeginAtZero: true},
		ShowLegend: true,
	}
}

// FrequencyDistribution builds the empirical cumulative distribution of the
// frequency samples: one point per distinct frequency, valued at the share of
// samples at or below it.
func FrequencyDistribution(freqs []float64) Spec {
	sorted := make([]float64, len(freqs))
	copy(sorted, freqs)
	sort.Float64s(sorted)

	var labels []string
	var values []float64
	n := float64(len(sorted))
	for i, f := range sorted {
		if i+1 < len(sorted) && sorted[i+1] == f {
			continue
		}
		labels = append(labels, fmt.Sprintf("%.2f", f))
		values = append(values, float64(i+1)/n)
	}

	return Spec{
		Panel:  PanelFrequencyDistribution,
		Kind:   KindLine,
		Title:  "CPU Frequency Distribution",
		Labels: labels,
		Datasets: []Dataset{{
			Label:  "Cumulative Share",
			Values: values,
			Colors: []color.Color{distributionColor},
		}},
		XAxis:      Axis{Title: "Frequency (GHz)", Position: PositionBottom},
		YAxis:      Axis{Title: "Share of samples", Position: PositionLeft, BeginAtZero: true},
		ShowLegend: true,
	}
}
