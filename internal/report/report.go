// Package report writes rendered scheduler dashboards in several formats.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/user/schedviz/internal/canvas"
	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/models"
	"github.com/user/schedviz/internal/render"
)

// Version is reported in every generated document.
const Version = "0.1.0"

// ReportAdapter defines the interface for generating different report formats.
// PrepareData may be called repeatedly; each call replaces the previous result.
type ReportAdapter interface {
	PrepareData(data *models.SchedulerOutput) error
	Write(outputFilePath string) error
}

// MetadataSetter is implemented by adapters whose run metadata can be
// replaced between redraws.
type MetadataSetter interface {
	SetMetadata(meta models.ReportMetadata)
}

// NewMetadata describes a new rendering run of source.
func NewMetadata(source, fingerprint, backend string) models.ReportMetadata {
	return models.ReportMetadata{
		Version:     Version,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Fingerprint: fingerprint,
		Backend:     backend,
	}
}

// New returns the adapter for format ("html", "json" or "xlsx").
func New(format string, meta models.ReportMetadata, lib chart.Library, logger *slog.Logger) (ReportAdapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch format {
	case "html":
		return &HTMLReportAdapter{Meta: meta, Library: lib, Logger: logger}, nil
	case "json":
		return &JSONReportAdapter{Meta: meta, Logger: logger}, nil
	case "xlsx":
		return &XLSXReportAdapter{Meta: meta, Logger: logger}, nil
	}
	return nil, fmt.Errorf("invalid report format '%s'. Must be 'html', 'json' or 'xlsx'", format)
}

func writeOutput(outputFilePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for report file %s: %w", outputFilePath, err)
	}
	return os.WriteFile(outputFilePath, data, 0644)
}

// specLibrary records chart specs without drawing anything. Formats that do
// not embed images use it to run the renderer's data policy.
type specLibrary struct{}

func (specLibrary) NewChart(surface canvas.Surface, spec chart.Spec) (chart.Instance, error) {
	surface.Mount(canvas.Content{Title: spec.Title, Tooltips: spec.Tooltips()})
	return &specInstance{surface: surface, spec: spec}, nil
}

type specInstance struct {
	surface   canvas.Surface
	spec      chart.Spec
	destroyed bool
}

func (s *specInstance) Spec() chart.Spec { return s.spec }

func (s *specInstance) Destroy() {
	if !s.destroyed {
		s.surface.Clear()
		s.destroyed = true
	}
}

// collectSpecs renders data without drawing and returns the spec of every
// non-empty panel.
func collectSpecs(data *models.SchedulerOutput, logger *slog.Logger) (map[chart.Panel]chart.Spec, error) {
	page, err := canvas.NewPage("", chart.MountIDs()...)
	if err != nil {
		return nil, err
	}
	r := render.New(page, specLibrary{}, logger)
	if err := r.Render(data); err != nil {
		return nil, err
	}

	specs := make(map[chart.Panel]chart.Spec)
	for _, p := range chart.Panels() {
		if inst, ok := r.Panels().Instance(p); ok {
			specs[p] = inst.Spec()
		}
	}
	return specs, nil
}
