package chart

import (
	"fmt"

	"github.com/user/schedviz/internal/canvas"
)

// Backend names accepted by NewDrawer.
const (
	BackendGonum   = "gonum"
	BackendGoChart = "gochart"
)

// Instance is a chart mounted on a surface.
type Instance interface {
	Spec() Spec
	// Destroy releases the surface. Calling it more than once is a no-op.
	Destroy()
}

// Library creates chart instances on surfaces.
type Library interface {
	NewChart(surface canvas.Surface, spec Spec) (Instance, error)
}

// DrawOptions controls image output of a Drawer.
type DrawOptions struct {
	Width  int // pixels
	Height int // pixels
	Format string
}

// DefaultDrawOptions is used when no size or format is configured.
var DefaultDrawOptions = DrawOptions{Width: 800, Height: 400, Format: canvas.FormatPNG}

func (o DrawOptions) withDefaults() DrawOptions {
	if o.Width <= 0 {
		o.Width = DefaultDrawOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultDrawOptions.Height
	}
	if o.Format == "" {
		o.Format = DefaultDrawOptions.Format
	}
	return o
}

// Drawer turns a spec into an encoded image.
type Drawer interface {
	Name() string
	Draw(spec Spec, opts DrawOptions) (canvas.Image, error)
}

// NewDrawer returns the drawer registered under name.
func NewDrawer(name string) (Drawer, error) {
	switch name {
	case BackendGonum, "":
		return GonumDrawer{}, nil
	case BackendGoChart:
		return GoChartDrawer{}, nil
	}
	return nil, fmt.Errorf("unknown chart backend %q (want %s or %s)", name, BackendGonum, BackendGoChart)
}

// RasterLibrary draws each chart to an image and mounts it on the surface.
type RasterLibrary struct {
	Drawer  Drawer
	Options DrawOptions
}

func NewRasterLibrary(d Drawer, opts DrawOptions) *RasterLibrary {
	return &RasterLibrary{Drawer: d, Options: opts.withDefaults()}
}

// NewChart implements Library.
func (l *RasterLibrary) NewChart(surface canvas.Surface, spec Spec) (Instance, error) {
	img, err := l.Drawer.Draw(spec, l.Options.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("%s backend failed to draw %s chart: %w", l.Drawer.Name(), spec.Panel, err)
	}

	surface.Mount(canvas.Content{
		Title:    spec.Title,
		Image:    img,
		Tooltips: spec.Tooltips(),
	})
	return &rasterInstance{surface: surface, spec: spec}, nil
}

type rasterInstance struct {
	surface   canvas.Surface
	spec      Spec
	destroyed bool
}

func (r *rasterInstance) Spec() Spec { return r.spec }

func (r *rasterInstance) Destroy() {
	if r.destroyed {
		return
	}
	r.surface.Clear()
	r.destroyed = true
}
