package webui

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// renderer implements echo.Renderer over the embedded templates.
type renderer struct {
	tmpl *template.Template
}

func newRenderer() *renderer {
	return &renderer{tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

// Render executes the named page template.
func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
