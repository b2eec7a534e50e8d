// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every template
var Funcs = template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("$%.2f", amount)
	},
	"datetime": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006, 15:04 UTC")
	},
}

// Templates parses every page and partial. Pages are named by file name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}

// MustTemplates is Templates for callers that cannot continue without them
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
