// Package view renders html/templates with a shared layout and a
// parse cache.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhbridge/billing/internal/pdf"
)

var (
	baseDir string
	once    sync.Once

	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

var funcs = template.FuncMap{
	"money":     pdf.Money,
	"shortDate": pdf.ShortDate,
	"qty":       pdf.Quantity,
	"rate":      pdf.Rate,
}

// initBase resolves the templates directory: VIEWS_DIR env override,
// otherwise walk upward from the working directory until
// web/templates is found (lets tests run from package directories).
func initBase() {
	if v := os.Getenv("VIEWS_DIR"); v != "" {
		baseDir = v
		return
	}
	dir, err := os.Getwd()
	if err != nil {
		baseDir = "web/templates"
		return
	}
	for {
		candidate := filepath.Join(dir, "web", "templates")
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			baseDir = candidate
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			baseDir = "web/templates"
			return
		}
		dir = parent
	}
}

func load(name string) (*template.Template, error) {
	dev := os.Getenv("APP_ENV") == "development"
	if !dev {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok {
			return t, nil
		}
	}
	t, err := template.New("layout.html").Funcs(funcs).ParseFiles(
		filepath.Join(baseDir, "layout.html"),
		filepath.Join(baseDir, name),
	)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	if !dev {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t, nil
}

// Render writes the named template wrapped in the shared layout.
func Render(w http.ResponseWriter, name string, data map[string]any) error {
	once.Do(initBase)
	t, err := load(name)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout.html", data)
}
