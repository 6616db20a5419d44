package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"
	"path"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/simplefw/pkg/route"
)

const (
	defaultLayout = "layout"
	extension     = ".html"
	scriptsDir    = "scripts"
)

// Layout data keys.
const (
	KeyContent = "Content"
	KeyScript  = "Script"
	KeyData    = "Data"
)

// Engine renders pages from a file system.
type Engine struct {
	fsys    fs.FS
	scripts fs.FS
	layout  string
	funcs   template.FuncMap
	reload  bool

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// New creates an Engine over fsys. When a layout is configured it must exist.
func New(fsys fs.FS, opts ...Option) (*Engine, error) {
	e := &Engine{
		fsys:    fsys,
		scripts: fsys,
		layout:  defaultLayout,
		funcs:   defaultFuncs(),
		cache:   make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.layout != "" {
		if _, err := e.template(e.layout); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Has reports whether the page exists.
func (e *Engine) Has(name string) bool {
	_, err := fs.Stat(e.fsys, name+extension)
	return err == nil
}

// Render writes the page, wrapped in the layout, to w. The page output is
// buffered so a failing template writes nothing.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	page, err := e.template(name)
	if err != nil {
		return err
	}

	var content bytes.Buffer
	if err := page.Execute(&content, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}

	if e.layout == "" {
		_, err := content.WriteTo(w)
		return err
	}

	layout, err := e.template(e.layout)
	if err != nil {
		return err
	}

	ld := layoutData(data)
	ld[KeyContent] = template.HTML(content.String()) //nolint:gosec // html/template output
	ld[KeyScript] = e.script(name)

	var out bytes.Buffer
	if err := layout.Execute(&out, ld); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, e.layout, err)
	}
	_, err = out.WriteTo(w)
	return err
}

// Component returns the page as a templ.Component.
func (e *Engine) Component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return e.Render(w, name, data)
	})
}

func (e *Engine) template(name string) (*template.Template, error) {
	if !e.reload {
		e.mu.RLock()
		t, ok := e.cache[name]
		e.mu.RUnlock()
		if ok {
			return t, nil
		}
	}

	file := name + extension
	if _, err := fs.Stat(e.fsys, file); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	t, err := template.New(path.Base(file)).Funcs(e.funcs).ParseFS(e.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("view: parse %s: %w", name, err)
	}

	if !e.reload {
		e.mu.Lock()
		e.cache[name] = t
		e.mu.Unlock()
	}
	return t, nil
}

// script returns the inline script of a page, if any.
func (e *Engine) script(name string) template.JS {
	b, err := fs.ReadFile(e.scripts, path.Join(scriptsDir, name+".js"))
	if err != nil {
		return ""
	}
	return template.JS(b) //nolint:gosec // trusted application asset
}

// layoutData copies map data so the layout sees the page keys, and wraps
// any other value under Data.
func layoutData(data any) map[string]any {
	if m, ok := data.(map[string]any); ok {
		out := make(map[string]any, len(m)+2)
		maps.Copy(out, m)
		return out
	}
	return map[string]any{KeyData: data}
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"url": route.URL,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006 15:04")
		},
	}
}
