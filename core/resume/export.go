package resume

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Document is an exported resume ready to be served as a download.
type Document struct {
	Filename string
	PDF      []byte
}

type Exporter struct {
	renderer *Renderer
	raster   Rasterizer
}

func NewExporter(renderer *Renderer, raster Rasterizer) *Exporter {
	return &Exporter{renderer: renderer, raster: raster}
}

// Export renders r with the template, rasterizes the page at twice its
// CSS size and wraps the image in a PDF.
func (e *Exporter) Export(ctx context.Context, r Resume, id TemplateID, mode PageMode) (Document, error) {
	if mode == "" {
		mode = PageA4
	}

	html, err := e.renderer.Render(LookupOrDefault(id).Layout(r))
	if err != nil {
		return Document{}, err
	}

	png, err := e.raster.Rasterize(ctx, html, RootSelector)
	if err != nil {
		return Document{}, fmt.Errorf("rasterizing: %w", err)
	}

	pdf, err := assemble(png, mode)
	if err != nil {
		return Document{}, err
	}

	return Document{Filename: Filename(r), PDF: pdf}, nil
}

// Filename is CV_<first>_<last>.pdf with characters unsafe in a file name
// dropped.
func Filename(r Resume) string {
	return "CV_" + clean(r.FirstName) + "_" + clean(r.LastName) + ".pdf"
}

func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r), strings.ContainsRune(`/\"<>:|?*`, r):
			return -1
		case unicode.IsSpace(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
