package canvas

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

//go:embed page.html.tmpl
var pageTemplate string

// PageSurface is one mount point of a Page.
type PageSurface struct {
	id      string
	content *Content
}

func (s *PageSurface) ID() string { return s.id }

// Mount replaces whatever is currently shown on the surface.
func (s *PageSurface) Mount(c Content) {
	s.content = &c
}

func (s *PageSurface) Clear() {
	s.content = nil
}

// Content returns the mounted content, or nil for a blank surface.
func (s *PageSurface) Content() *Content {
	return s.content
}

// Page is an HTML dashboard with a fixed set of mount points.
type Page struct {
	Title    string
	Subtitle string
	surfaces []*PageSurface
	byID     map[string]*PageSurface
	tmpl     *template.Template
}

// NewPage creates a page with one surface per id, laid out in the given order.
func NewPage(title string, ids ...string) (*Page, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"DataURI": func(img Image) template.URL {
			return template.URL(fmt.Sprintf("data:%s;base64,%s", img.MediaType(), base64.StdEncoding.EncodeToString(img.Data)))
		},
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	p := &Page{
		Title: title,
		byID:  make(map[string]*PageSurface, len(ids)),
		tmpl:  tmpl,
	}
	for _, id := range ids {
		if _, dup := p.byID[id]; dup {
			return nil, fmt.Errorf("duplicate mount point %q", id)
		}
		s := &PageSurface{id: id}
		p.surfaces = append(p.surfaces, s)
		p.byID[id] = s
	}
	return p, nil
}

// Surface implements Host.
func (p *Page) Surface(id string) (Surface, error) {
	s, ok := p.byID[id]
	if !ok {
		return nil, mountNotFound(id)
	}
	return s, nil
}

// Surfaces returns the page surfaces in layout order.
func (p *Page) Surfaces() []*PageSurface {
	return p.surfaces
}

// Render executes the page template.
func (p *Page) Render() ([]byte, error) {
	data := struct {
		Title    string
		Subtitle string
		Surfaces []*PageSurface
	}{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Surfaces: p.surfaces,
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the page and writes it to path, creating parent directories.
func (p *Page) WriteFile(path string) error {
	out, err := p.Render()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for page %s: %w", path, err)
	}
	return os.WriteFile(path, out, 0644)
}
