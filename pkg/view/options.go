package view

import (
	"html/template"
	"io/fs"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLayout sets the layout template name, without extension.
// An empty name disables the layout.
func WithLayout(name string) Option {
	return func(e *Engine) {
		e.layout = name
	}
}

// WithFuncs adds template functions. They override the built-in ones.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for k, v := range funcs {
			e.funcs[k] = v
		}
	}
}

// WithScripts sets the file system page scripts are read from.
// Defaults to the templates file system.
func WithScripts(fsys fs.FS) Option {
	return func(e *Engine) {
		if fsys != nil {
			e.scripts = fsys
		}
	}
}

// WithReload parses templates on every render instead of caching them.
func WithReload(reload bool) Option {
	return func(e *Engine) {
		e.reload = reload
	}
}
