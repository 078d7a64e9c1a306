package report

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/models"
)

var sheetNames = map[chart.Panel]string{
	chart.PanelGantt:                 "Gantt",
	chart.PanelFrequencyHistogram:    "Histogram",
	chart.PanelEnergy:                "Energy",
	chart.PanelFrequencyDistribution: "Distribution",
}

// XLSXReportAdapter writes one worksheet per non-empty panel with the chart
// data, and a native Excel chart for bar and line panels.
type XLSXReportAdapter struct {
	Meta   models.ReportMetadata
	Logger *slog.Logger

	workbook []byte
}

// PrepareData builds the workbook in memory.
func (xra *XLSXReportAdapter) PrepareData(data *models.SchedulerOutput) error {
	if xra.Logger == nil {
		xra.Logger = slog.Default()
	}
	specs, err := collectSpecs(data, xra.Logger)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeRunSheet(f, xra.Meta); err != nil {
		return err
	}
	for _, panel := range chart.Panels() {
		spec, ok := specs[panel]
		if !ok {
			continue
		}
		if err := writePanelSheet(f, sheetNames[panel], spec); err != nil {
			return fmt.Errorf("failed to write %s sheet: %w", sheetNames[panel], err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	xra.workbook = buf.Bytes()
	return nil
}

// Write saves the workbook to the specified output file.
func (xra *XLSXReportAdapter) Write(outputFilePath string) error {
	if xra.workbook == nil {
		return fmt.Errorf("XLSX report has not been prepared")
	}
	return writeOutput(outputFilePath, xra.workbook)
}

func writeRunSheet(f *excelize.File, meta models.ReportMetadata) error {
	const sheet = "Run"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Version", meta.Version},
		{"Run ID", meta.RunID},
		{"Generated At", meta.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Source", meta.Source},
		{"Fingerprint", meta.Fingerprint},
		{"Backend", meta.Backend},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	return nil
}

func writePanelSheet(f *excelize.File, sheet string, spec chart.Spec) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	ds := spec.Datasets[0]

	header := []any{labelHeader(spec)}
	if len(ds.Ranges) > 0 {
		header = append(header, "Start", "End", "Duration", "Color", "Details")
	} else {
		header = append(header, ds.Label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := 0; i < ds.Len(); i++ {
		row := []any{""}
		if i < len(spec.Labels) {
			row[0] = spec.Labels[i]
		}
		if len(ds.Ranges) > 0 {
			r := ds.Ranges[i]
			details := ""
			if i < len(ds.Tooltips) {
				for j, line := range ds.Tooltips[i] {
					if j > 0 {
						details += "; "
					}
					details += line
				}
			}
			row = append(row, r.Start, r.End, r.End-r.Start, chart.CSS(ds.ColorAt(i)), details)
		} else {
			row = append(row, ds.Values[i])
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if spec.Kind == chart.KindHorizontalBar || ds.Len() == 0 {
		return nil
	}
	return addNativeChart(f, sheet, spec, ds.Len())
}

func addNativeChart(f *excelize.File, sheet string, spec chart.Spec, n int) error {
	chartType := excelize.Col
	if spec.Kind == chart.KindLine {
		chartType = excelize.Line
	}
	return f.AddChart(sheet, "D2", &excelize.Chart{
		Type: chartType,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, n+1),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, n+1),
		}},
		Title:  []excelize.RichTextRun{{Text: spec.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis:  excelize.ChartAxis{Title: axisTitle(spec.XAxis)},
		YAxis:  excelize.ChartAxis{Title: axisTitle(spec.YAxis)},
	})
}

func axisTitle(a chart.Axis) []excelize.RichTextRun {
	if a.Title == "" {
		return nil
	}
	return []excelize.RichTextRun{{Text: a.Title}}
}

func labelHeader(spec chart.Spec) string {
	switch spec.Panel {
	case chart.PanelGantt:
		return "Process"
	case chart.PanelFrequencyHistogram:
		return "Bin (GHz)"
	case chart.PanelEnergy:
		return "Time (ms)"
	case chart.PanelFrequencyDistribution:
		return "Frequency (GHz)"
	}
	return "Label"
}

// SetMetadata implements MetadataSetter.
func (xra *XLSXReportAdapter) SetMetadata(meta models.ReportMetadata) {
	xra.Meta = meta
}
