// Package page renders HTML pages that embed compiled menus.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

// MenuSource provides compiled menu markup by name.
type MenuSource interface {
	GetMenu(name string) string
}

// Data is passed to the page template.
type Data struct {
	Site  string
	Menus []string
}

const layout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Site }}</title>
</head>
<body>
<nav class="navbar navbar-default">
{{- range .Menus }}
{{ menu . }}
{{- end }}
</nav>
</body>
</html>
`

// Renderer renders pages through a template that can call
// {{ menu "name" }} to embed a compiled menu.
type Renderer struct {
	tmpl *template.Template
	data Data
}

// New parses the page layout. The markup returned by src is embedded as
// trusted HTML, unescaped.
func New(src MenuSource, site string, menus ...string) (*Renderer, error) {
	funcs := template.FuncMap{
		"menu": func(name string) template.HTML {
			return template.HTML(src.GetMenu(name))
		},
	}

	tmpl, err := template.New("page").Funcs(funcs).Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page layout: %w", err)
	}

	return &Renderer{
		tmpl: tmpl,
		data: Data{Site: site, Menus: menus},
	}, nil
}

// Render executes the layout.
func (r *Renderer) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Handler serves the rendered page.
func (r *Renderer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}

		body, err := r.Render()
		if err != nil {
			slog.Error("failed to render page", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}
