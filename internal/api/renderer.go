package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates
var templateFS embed.FS

// Renderer renders the embedded page templates for echo
type Renderer struct {
	templates *template.Template
	indexBody template.HTML
}

// Ensure Renderer implements echo.Renderer
var _ echo.Renderer = (*Renderer)(nil)

type indexView struct {
	Body template.HTML
}

// NewRenderer parses the page templates and renders the home page copy
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	source, err := templateFS.ReadFile("templates/index.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read home page: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Linkify))
	var body bytes.Buffer
	if err := md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("failed to render home page: %w", err)
	}

	return &Renderer{
		templates: templates,
		// The markdown source is embedded, not user supplied.
		indexBody: template.HTML(body.String()),
	}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if name == "index.html" && data == nil {
		data = indexView{Body: r.indexBody}
	}
	return r.templates.ExecuteTemplate(w, name, data)
}
