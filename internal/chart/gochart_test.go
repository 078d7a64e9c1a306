package chart

import (
	"testing"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/user/schedviz/internal/models"
)

func tickBounds(ticks []gochart.Tick) (lo, hi float64) {
	lo, hi = ticks[0].Value, ticks[0].Value
	for _, t := range ticks {
		lo = min(lo, t.Value)
		hi = max(hi, t.Value)
	}
	return lo, hi
}

func TestGoChartCategoryTicks(t *testing.T) {
	labels := make([]string, 14)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}
	ticks := goChartCategoryTicks(labels, len(labels))

	if len(ticks) != len(labels)+2 {
		t.Fatalf("expected a tick per category plus two edges, got %d", len(ticks))
	}
	if lo, hi := tickBounds(ticks); lo != -0.5 || hi != 13.5 {
		t.Errorf("tick range = [%v, %v], want [-0.5, 13.5]", lo, hi)
	}
	if ticks[1].Label != "a" || ticks[2].Label != "" || ticks[3].Label != "c" {
		t.Errorf("unexpected thinning: %q %q %q", ticks[1].Label, ticks[2].Label, ticks[3].Label)
	}

	single := goChartCategoryTicks([]string{"1.0"}, 1)
	if lo, hi := tickBounds(single); lo >= hi {
		t.Errorf("single category collapsed the range to [%v, %v]", lo, hi)
	}
}

func TestGoChartLinesKeepLastPoint(t *testing.T) {
	samples := make([]models.EnergySample, 14)
	for i := range samples {
		samples[i] = models.EnergySample{Time: float64(i), Energy: float64(i * i)}
	}
	ch := goChartLines(Energy(samples), DefaultDrawOptions)

	_, hi := tickBounds(ch.XAxis.Ticks)
	last := ch.Series[0].(gochart.ContinuousSeries).XValues[13]
	if last >= hi {
		t.Errorf("last point x=%v is outside the axis range ending at %v", last, hi)
	}
}

func TestGoChartGanttRowsInsideRange(t *testing.T) {
	ch := goChartGantt(Gantt([]models.TimeSlice{
		{PID: 1, Start: 0, Duration: 2, Frequency: 1},
		{PID: 2, Start: 2, Duration: 2, Frequency: 1},
		{PID: 3, Start: 4, Duration: 2, Frequency: 1},
	}), DefaultDrawOptions)

	lo, hi := tickBounds(ch.YAxis.Ticks)
	if lo != -0.5 || hi != 2.5 {
		t.Errorf("row range = [%v, %v], want [-0.5, 2.5]", lo, hi)
	}
	if ch.YAxis.Ticks[1].Label != "P3" || ch.YAxis.Ticks[3].Label != "P1" {
		t.Errorf("rows are not labeled bottom-up: %+v", ch.YAxis.Ticks)
	}
}
