package chart

import (
	"bytes"
	"testing"

	"github.com/user/schedviz/internal/canvas"
	"github.com/user/schedviz/internal/models"
	"github.com/user/schedviz/pkg/histogram"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testSpecs(t *testing.T) []Spec {
	t.Helper()
	h, err := histogram.Build([]float64{1.0, 1.0, 2.0, 3.0, 3.0}, histogram.DefaultBins)
	if err != nil {
		t.Fatalf("histogram.Build() error = %v", err)
	}
	single, err := histogram.Build([]float64{2.0, 2.0}, histogram.DefaultBins)
	if err != nil {
		t.Fatalf("histogram.Build() error = %v", err)
	}
	return []Spec{
		Gantt([]models.TimeSlice{
			{PID: 1, Start: 0, Duration: 5, Frequency: 1.2},
			{PID: 2, Start: 5, Duration: 3, Frequency: 2.4},
			{PID: 1, Start: 8, Duration: 1.5, Frequency: 0.9},
		}),
		FrequencyHistogram(h),
		FrequencyHistogram(single),
		Energy([]models.EnergySample{{Time: 1, Energy: 1}, {Time: 2, Energy: 8}, {Time: 3, Energy: 12.5}}),
		Energy([]models.EnergySample{{Time: 1, Energy: 4}}),
		FrequencyDistribution([]float64{0.5, 1.5, 2.0}),
		FrequencyDistribution([]float64{2.0, 2.0}),
	}
}

func TestDrawersProducePNG(t *testing.T) {
	for _, name := range []string{BackendGonum, BackendGoChart} {
		d, err := NewDrawer(name)
		if err != nil {
			t.Fatalf("NewDrawer(%q) error = %v", name, err)
		}
		for _, spec := range testSpecs(t) {
			img, err := d.Draw(spec, DrawOptions{Width: 640, Height: 320, Format: canvas.FormatPNG})
			if err != nil {
				t.Errorf("%s: Draw(%s) error = %v", name, spec.Panel, err)
				continue
			}
			if !bytes.HasPrefix(img.Data, pngMagic) {
				t.Errorf("%s: Draw(%s) did not produce a PNG", name, spec.Panel)
			}
			if img.Format != canvas.FormatPNG || img.Width != 640 || img.Height != 320 {
				t.Errorf("%s: unexpected image metadata %+v", name, img)
			}
		}
	}
}

func TestDrawersProduceSVG(t *testing.T) {
	for _, d := range []Drawer{GonumDrawer{}, GoChartDrawer{}} {
		img, err := d.Draw(testSpecs(t)[0], DrawOptions{Format: canvas.FormatSVG})
		if err != nil {
			t.Fatalf("%s: Draw() error = %v", d.Name(), err)
		}
		if !bytes.Contains(img.Data, []byte("<svg")) {
			t.Errorf("%s: output is not SVG", d.Name())
		}
		if img.Width != DefaultDrawOptions.Width {
			t.Errorf("%s: expected default width, got %d", d.Name(), img.Width)
		}
	}
}

func TestDrawSinglePointLine(t *testing.T) {
	specs := []Spec{
		Energy([]models.EnergySample{{Time: 0.5, Energy: 3}}),
		FrequencyDistribution([]float64{2.0, 2.0}),
	}
	for _, d := range []Drawer{GonumDrawer{}, GoChartDrawer{}} {
		for _, spec := range specs {
			if _, err := d.Draw(spec, DefaultDrawOptions); err != nil {
				t.Errorf("%s: Draw(%s) error = %v", d.Name(), spec.Panel, err)
			}
		}
	}
}

func TestGonumBarsNarrowCanvas(t *testing.T) {
	h, err := histogram.Build([]float64{1.0, 2.0, 3.0}, histogram.DefaultBins)
	if err != nil {
		t.Fatalf("histogram.Build() error = %v", err)
	}
	img, err := GonumDrawer{}.Draw(FrequencyHistogram(h), DrawOptions{Width: 60, Height: 200})
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if !bytes.HasPrefix(img.Data, pngMagic) {
		t.Error("narrow histogram did not produce a PNG")
	}
}

func TestDrawRejectsEmptySpec(t *testing.T) {
	for _, d := range []Drawer{GonumDrawer{}, GoChartDrawer{}} {
		if _, err := d.Draw(Spec{Kind: KindLine, Title: "empty"}, DefaultDrawOptions); err == nil {
			t.Errorf("%s: expected an error for a spec without datasets", d.Name())
		}
	}
}

func TestNewDrawerUnknown(t *testing.T) {
	if _, err := NewDrawer("excel"); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

type recordingSurface struct {
	id      string
	mounted []canvas.Content
	cleared int
}

func (s *recordingSurface) ID() string { return s.id }

func (s *recordingSurface) Mount(c canvas.Content) { s.mounted = append(s.mounted, c) }

func (s *recordingSurface) Clear() { s.cleared++ }

func TestRasterLibraryMountsAndDestroys(t *testing.T) {
	lib := NewRasterLibrary(GonumDrawer{}, DrawOptions{})
	surface := &recordingSurface{id: "ganttChart"}

	spec := testSpecs(t)[0]
	inst, err := lib.NewChart(surface, spec)
	if err != nil {
		t.Fatalf("NewChart() error = %v", err)
	}
	if len(surface.mounted) != 1 {
		t.Fatalf("expected one mount, got %d", len(surface.mounted))
	}
	if got := surface.mounted[0]; got.Title != spec.Title || len(got.Tooltips) != 3 {
		t.Errorf("unexpected content title=%q tooltips=%d", got.Title, len(got.Tooltips))
	}
	if inst.Spec().Panel != PanelGantt {
		t.Errorf("unexpected panel %v", inst.Spec().Panel)
	}

	inst.Destroy()
	inst.Destroy()
	if surface.cleared != 1 {
		t.Errorf("expected a single clear, got %d", surface.cleared)
	}
}
