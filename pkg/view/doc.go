// Package view renders html/template pages inside a shared layout.
//
// Pages live in an fs.FS as "<name>.html" (for example "category/index.html").
// A page is rendered first; its output becomes the Content of the layout
// ("layout.html" by default), together with the page data and the inline
// Script read from "scripts/<name>.js" when such a file exists.
//
//	views, err := view.New(assets, view.WithReload(devMode))
//	err = views.Render(w, "category/index", map[string]any{"Title": "Liste des catégories"})
//
// [Engine.Component] adapts a page to templ.Component so handlers can
// return it through the framework Render helpers.
package view
