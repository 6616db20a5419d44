// Package views embeds the page templates of the demo application.
package views

import (
	"embed"
	"html/template"
	"strings"

	"github.com/dmitrymomot/simplefw/pkg/cookie"
	"github.com/dmitrymomot/simplefw/pkg/route"
	"github.com/dmitrymomot/simplefw/pkg/view"
)

//go:embed *.html */*.html scripts
var files embed.FS

// New returns the view engine over the embedded templates. reload re-parses
// templates on every render.
func New(reload bool) (*view.Engine, error) {
	return view.New(files,
		view.WithFuncs(Funcs()),
		view.WithReload(reload),
	)
}

// Funcs returns the template helpers the layout relies on.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"alert": AlertClass,
		"link":  Link,
	}
}

// AlertClass maps a flash kind to its Bootstrap alert variant.
func AlertClass(kind string) string {
	switch kind {
	case cookie.FlashSuccess, cookie.FlashWarning, cookie.FlashDanger:
		return kind
	default:
		return "info"
	}
}

// Link builds the URL of a menu route written as "category/new".
func Link(r string) string {
	return route.URL(strings.Split(r, "/")...)
}
