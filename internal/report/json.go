package report

import (
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"

	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/models"
)

// JSONDocument is the JSON report: run metadata plus one Chart.js
// configuration per non-empty panel, keyed by mount id.
type JSONDocument struct {
	Metadata models.ReportMetadata     `json:"metadata"`
	Panels   map[string]map[string]any `json:"panels"`
}

// JSONReportAdapter generates reports in JSON format.
type JSONReportAdapter struct {
	Meta   models.ReportMetadata
	Logger *slog.Logger

	reportData []byte
}

// PrepareData builds the chart configurations and encodes them.
func (jra *JSONReportAdapter) PrepareData(data *models.SchedulerOutput) error {
	if jra.Logger == nil {
		jra.Logger = slog.Default()
	}
	specs, err := collectSpecs(data, jra.Logger)
	if err != nil {
		return err
	}

	doc := JSONDocument{Metadata: jra.Meta, Panels: make(map[string]map[string]any, len(specs))}
	for panel, spec := range specs {
		doc.Panels[panel.MountID()] = chart.ChartJSConfig(spec)
	}

	out, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	jra.reportData = out
	return nil
}

// Write saves the JSON report data to the specified output file.
func (jra *JSONReportAdapter) Write(outputFilePath string) error {
	if jra.reportData == nil {
		return fmt.Errorf("JSON report has not been prepared")
	}
	return writeOutput(outputFilePath, jra.reportData)
}

// SetMetadata implements MetadataSetter.
func (jra *JSONReportAdapter) SetMetadata(meta models.ReportMetadata) {
	jra.Meta = meta
}
