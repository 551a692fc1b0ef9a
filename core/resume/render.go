package resume

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// RootSelector addresses the node holding the rendered page.
const RootSelector = "#cv"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Renderer turns a page into a standalone HTML document.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	funcs := template.FuncMap{
		"color":    cssColor,
		"fontSize": fontSize,
		"renderBlock": func(b Block, p Page) (template.HTML, error) {
			return r.partial("block-"+string(b), p)
		},
		"renderLayout": func(p Page) (template.HTML, error) {
			return r.partial("layout-"+string(p.Template), p)
		},
	}

	tmpl, err := template.New("document").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing resume templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// partial executes an already escaped sub-template so its output can be
// embedded verbatim.
func (r *Renderer) partial(name string, p Page) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Render returns the full HTML document for p.
func (r *Renderer) Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "document", p); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", p.Template, err)
	}
	return buf.Bytes(), nil
}

func cssColor(c, fallback string) template.CSS {
	if !hexColor.MatchString(c) {
		c = fallback
	}
	return template.CSS(c)
}

func fontSize(scale float64) template.CSS {
	if scale < MinFontScale || scale > MaxFontScale {
		scale = 1
	}
	return template.CSS(strconv.FormatFloat(16*scale, 'f', 2, 64) + "px")
}
