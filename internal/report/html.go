package report

import (
	"fmt"
	"log/slog"

	"github.com/user/schedviz/internal/canvas"
	"github.com/user/schedviz/internal/chart"
	"github.com/user/schedviz/internal/models"
	"github.com/user/schedviz/internal/render"
)

// HTMLReportAdapter renders the dashboard into a self-contained HTML page.
// The page and renderer survive across PrepareData calls so that redraws
// replace the previous charts.
type HTMLReportAdapter struct {
	Meta    models.ReportMetadata
	Library chart.Library
	Logger  *slog.Logger

	page     *canvas.Page
	renderer *render.Renderer
	report   []byte
}

// PrepareData redraws every panel and renders the page.
func (hra *HTMLReportAdapter) PrepareData(data *models.SchedulerOutput) error {
	if hra.Library == nil {
		return fmt.Errorf("no chart library configured for HTML report")
	}
	if hra.Logger == nil {
		hra.Logger = slog.Default()
	}
	if hra.page == nil {
		page, err := canvas.NewPage("Energy-Efficient CPU Scheduler", chart.MountIDs()...)
		if err != nil {
			return err
		}
		hra.page = page
		hra.renderer = render.New(page, hra.Library, hra.Logger)
	}
	hra.page.Subtitle = fmt.Sprintf("run %s | %s | %s backend | generated %s",
		hra.Meta.RunID, hra.Meta.Source, hra.Meta.Backend, hra.Meta.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	// Failed panels stay blank; the rest of the page is still useful.
	if err := hra.renderer.Render(data); err != nil {
		hra.Logger.Warn("HTML report may be incomplete", "error", err)
	}

	out, err := hra.page.Render()
	if err != nil {
		return err
	}
	hra.report = out
	return nil
}

// Write saves the HTML report to the specified output file.
func (hra *HTMLReportAdapter) Write(outputFilePath string) error {
	if hra.report == nil {
		return fmt.Errorf("HTML report has not been prepared")
	}
	return writeOutput(outputFilePath, hra.report)
}

// SetMetadata implements MetadataSetter.
func (hra *HTMLReportAdapter) SetMetadata(meta models.ReportMetadata) {
	hra.Meta = meta
}
