// Package canvas provides the drawing surfaces charts are mounted onto.
package canvas

import (
	"errors"
	"fmt"
)

// ErrMountNotFound is returned when a host has no surface with the requested id.
var ErrMountNotFound = errors.New("mount point not found")

// Image formats understood by hosts.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Image is an encoded chart image.
type Image struct {
	Format string
	Data   []byte
	Width  int
	Height int
}

// MediaType returns the MIME type of the image.
func (img Image) MediaType() string {
	if img.Format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Tooltip is the hover text attached to one element of a chart.
type Tooltip struct {
	Label string
	Lines []string
}

// Content is everything mounted onto a surface for one chart instance.
type Content struct {
	Title    string
	Image    Image
	Tooltips []Tooltip
}

// Surface is a single drawing area identified by a unique id.
type Surface interface {
	ID() string
	Mount(c Content)
	Clear()
}

// Host resolves surfaces by id.
type Host interface {
	Surface(id string) (Surface, error)
}

func mountNotFound(id string) error {
	return fmt.Errorf("surface %q: %w", id, ErrMountNotFound)
}
