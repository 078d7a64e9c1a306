// Package render binds scheduler output to the dashboard panels.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/schedviz/internal/canvas"
	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/models"
	"github.com/user/schedviz/pkg/histogram"
)

// Renderer draws the four dashboard panels. Every call to a render operation
// releases the panel's previous chart before creating a new one.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	host   canvas.Host
	lib    chart.Library
	panels *PanelSet
	logger *slog.Logger
}

// New creates a renderer drawing with lib onto surfaces of host. A nil logger
// uses slog.Default().
func New(host canvas.Host, lib chart.Library, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		host:   host,
		lib:    lib,
		panels: NewPanelSet(),
		logger: logger,
	}
}

// Panels exposes the live chart instances.
func (r *Renderer) Panels() *PanelSet {
	return r.panels
}

// Render redraws every panel from out. All panels are attempted; failures are
// joined into the returned error and leave the failing panel blank.
func (r *Renderer) Render(out *models.SchedulerOutput) error {
	if out == nil {
		out = &models.SchedulerOutput{}
	}
	return errors.Join(
		r.RenderGantt(out.GanttData),
		r.RenderFrequencyHistogram(out.FrequencyData),
		r.RenderEnergy(out.EnergyData),
		r.RenderFrequencyDistribution(out.FrequencyData),
	)
}

// RenderGantt draws one bar per time slice.
func (r *Renderer) RenderGantt(data []models.TimeSlice) error {
	slices, dropped := models.ValidTimeSlices(data)
	r.warnDropped(chart.PanelGantt, dropped)
	return r.draw(chart.PanelGantt, len(slices), func() (chart.Spec, error) {
		return chart.Gantt(slices), nil
	})
}

// RenderFrequencyHistogram draws the frequency samples in histogram.DefaultBins bins.
func (r *Renderer) RenderFrequencyHistogram(data []models.FrequencySample) error {
	freqs, dropped := models.Frequencies(data)
	r.warnDropped(chart.PanelFrequencyHistogram, dropped)
	return r.draw(chart.PanelFrequencyHistogram, len(freqs), func() (chart.Spec, error) {
		h, err := histogram.Build(freqs, histogram.DefaultBins)
		if err != nil {
			return chart.Spec{}, err
		}
		if h.Degenerate() {
			r.logger.Debug("all frequency samples are equal, drawing a single bin",
				"frequency", h.Min, "samples", h.Total())
		}
		return chart.FrequencyHistogram(h), nil
	})
}

// RenderEnergy draws energy over time.
func (r *Renderer) RenderEnergy(data []models.EnergySample) error {
	samples, dropped := models.ValidEnergySamples(data)
	r.warnDropped(chart.PanelEnergy, dropped)
	return r.draw(chart.PanelEnergy, len(samples), func() (chart.Spec, error) {
		return chart.Energy(samples), nil
	})
}

// RenderFrequencyDistribution draws the cumulative distribution of the
// frequency samples.
func (r *Renderer) RenderFrequencyDistribution(data []models.FrequencySample) error {
	freqs, dropped := models.Frequencies(data)
	r.warnDropped(chart.PanelFrequencyDistribution, dropped)
	return r.draw(chart.PanelFrequencyDistribution, len(freqs), func() (chart.Spec, error) {
		return chart.FrequencyDistribution(freqs), nil
	})
}

// Clear releases every panel.
func (r *Renderer) Clear() {
	r.panels.ClearAll()
}

func (r *Renderer) draw(panel chart.Panel, n int, build func() (chart.Spec, error)) error {
	r.panels.Clear(panel)
	surface, err := r.host.Surface(panel.MountID())
	if err != nil {
		return fmt.Errorf("failed to render %s panel: %w", panel, err)
	}

	if n == 0 {
		r.logger.Debug("no data, panel left blank", "panel", panel.String())
		return nil
	}

	spec, err := build()
	if err != nil {
		return fmt.Errorf("failed to build %s chart: %w", panel, err)
	}
	inst, err := r.lib.NewChart(surface, spec)
	if err != nil {
		r.logger.Warn("failed to draw panel", "panel", panel.String(), "error", err)
		return fmt.Errorf("failed to render %s panel: %w", panel, err)
	}
	r.panels.Replace(panel, inst)
	r.logger.Debug("panel rendered", "panel", panel.String(), "elements", n)
	return nil
}

func (r *Renderer) warnDropped(panel chart.Panel, dropped int) {
	if dropped > 0 {
		r.logger.Warn("skipped invalid records", "panel", panel.String(), "count", dropped)
	}
}
