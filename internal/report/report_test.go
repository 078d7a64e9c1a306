package report

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/models"
)

func getTestSchedulerOutput() *models.SchedulerOutput {
	return &models.SchedulerOutput{
		GanttData: []models.TimeSlice{
			{PID: 1, Start: 0, Duration: 5, Frequency: 1.2},
			{PID: 2, Start: 5, Duration: 3, Frequency: 2.4},
		},
		FrequencyData: []models.FrequencySample{{Frequency: 1.0}, {Frequency: 1.0}, {Frequency: 2.0}, {Frequency: 3.0}, {Frequency: 3.0}},
		EnergyData: []models.EnergySample{
			{Time: 5, Energy: 8.64},
			{Time: 8, Energy: 50.11},
		},
	}
}

func getTestMetadata() models.ReportMetadata {
	return models.ReportMetadata{
		Version:     "test-0.1",
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Source:      "run.json",
		Fingerprint: "abc123",
		Backend:     chart.BackendGonum,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSONReportAdapter(t *testing.T) {
	adapter := &JSONReportAdapter{Meta: getTestMetadata(), Logger: quietLogger()}

	if err := adapter.PrepareData(getTestSchedulerOutput()); err != nil {
		t.Fatalf("JSONReportAdapter.PrepareData() error = %v", err)
	}

	var doc struct {
		Metadata models.ReportMetadata     `json:"metadata"`
		Panels   map[string]map[string]any `json:"panels"`
	}
	if err := json.Unmarshal(adapter.reportData, &doc); err != nil {
		t.Fatalf("Generated JSON is invalid: %v", err)
	}
	if doc.Metadata.RunID != "run-1" {
		t.Errorf("unexpected metadata %+v", doc.Metadata)
	}
	for _, id := range chart.MountIDs() {
		if _, ok := doc.Panels[id]; !ok {
			t.Errorf("panel %s missing from JSON report", id)
		}
	}
	if !strings.Contains(string(adapter.reportData), "Time: 5.00 - 8.00 ms") {
		t.Error("gantt tooltip text missing from JSON report")
	}

	outputFile := filepath.Join(t.TempDir(), "out", "report.json")
	if err := adapter.Write(outputFile); err != nil {
		t.Fatalf("JSONReportAdapter.Write() error = %v", err)
	}
	if _, err := os.Stat(outputFile); err != nil {
		t.Errorf("JSON report file was not created: %v", err)
	}
}

func TestJSONReportAdapterOmitsEmptyPanels(t *testing.T) {
	adapter := &JSONReportAdapter{Meta: getTestMetadata(), Logger: quietLogger()}
	data := getTestSchedulerOutput()
	data.FrequencyData = nil

	if err := adapter.PrepareData(data); err != nil {
		t.Fatalf("PrepareData() error = %v", err)
	}
	var doc JSONDocument
	if err := json.Unmarshal(adapter.reportData, &doc); err != nil {
		t.Fatalf("Generated JSON is invalid: %v", err)
	}
	if len(doc.Panels) != 2 {
		t.Errorf("expected gantt and energy panels only, got %d", len(doc.Panels))
	}
}

func TestHTMLReportAdapter(t *testing.T) {
	lib := chart.NewRasterLibrary(chart.GonumDrawer{}, chart.DrawOptions{Width: 400, Height: 240})
	adapter := &HTMLReportAdapter{Meta: getTestMetadata(), Library: lib, Logger: quietLogger()}

	if err := adapter.PrepareData(getTestSchedulerOutput()); err != nil {
		t.Fatalf("HTMLReportAdapter.PrepareData() error = %v", err)
	}
	html := string(adapter.report)
	for _, id := range chart.MountIDs() {
		if !strings.Contains(html, `id="`+id+`"`) {
			t.Errorf("mount point %s missing from page", id)
		}
	}
	if strings.Count(html, "data:image/png;base64,") != 4 {
		t.Errorf("expected 4 embedded images")
	}
	if !strings.Contains(html, "run run-1") {
		t.Error("run metadata missing from page")
	}

	// Redrawing with fewer datasets blanks the missing panels.
	if err := adapter.PrepareData(&models.SchedulerOutput{EnergyData: getTestSchedulerOutput().EnergyData}); err != nil {
		t.Fatalf("second PrepareData() error = %v", err)
	}
	html = string(adapter.report)
	if strings.Count(html, "data:image/png;base64,") != 1 {
		t.Errorf("expected a single embedded image after redraw")
	}

	outputFile := filepath.Join(t.TempDir(), "report.html")
	if err := adapter.Write(outputFile); err != nil {
		t.Fatalf("HTMLReportAdapter.Write() error = %v", err)
	}
}

func TestHTMLReportAdapterWithoutLibrary(t *testing.T) {
	adapter := &HTMLReportAdapter{}
	if err := adapter.PrepareData(getTestSchedulerOutput()); err == nil {
		t.Error("expected an error without a chart library")
	}
	if err := adapter.Write(filepath.Join(t.TempDir(), "x.html")); err == nil {
		t.Error("expected an error writing an unprepared report")
	}
}

func TestXLSXReportAdapter(t *testing.T) {
	adapter := &XLSXReportAdapter{Meta: getTestMetadata(), Logger: quietLogger()}
	if err := adapter.PrepareData(getTestSchedulerOutput()); err != nil {
		t.Fatalf("XLSXReportAdapter.PrepareData() error = %v", err)
	}

	outputFile := filepath.Join(t.TempDir(), "report.xlsx")
	if err := adapter.Write(outputFile); err != nil {
		t.Fatalf("XLSXReportAdapter.Write() error = %v", err)
	}

	f, err := excelize.OpenFile(outputFile)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Run", "Gantt", "Histogram", "Energy", "Distribution"}
	got := f.GetSheetList()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sheets = %v, want %v", got, want)
	}

	rows, err := f.GetRows("Gantt")
	if err != nil {
		t.Fatalf("GetRows(Gantt) error = %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "P1" || rows[2][0] != "P2" {
		t.Errorf("unexpected gantt rows %v", rows)
	}

	rows, err = f.GetRows("Histogram")
	if err != nil {
		t.Fatalf("GetRows(Histogram) error = %v", err)
	}
	if len(rows) != 11 || rows[10][0] != "2.80-3.00" || rows[10][1] != "2" {
		t.Errorf("unexpected histogram rows %v", rows)
	}

	runID, err := f.GetCellValue("Run", "B2")
	if err != nil || runID != "run-1" {
		t.Errorf("unexpected run id %q (%v)", runID, err)
	}
}

func TestNewAdapter(t *testing.T) {
	for _, format := range []string{"html", "json", "xlsx"} {
		if _, err := New(format, getTestMetadata(), nil, nil); err != nil {
			t.Errorf("New(%q) error = %v", format, err)
		}
	}
	if _, err := New("pdf", getTestMetadata(), nil, nil); err == nil {
		t.Error("expected an error for an unknown format")
	}

	meta := NewMetadata("run.json", "abc", "gochart")
	if meta.RunID == "" || meta.Version != Version || meta.GeneratedAt.IsZero() {
		t.Errorf("unexpected metadata %+v", meta)
	}
}
