// Package form declares HTML forms as a list of fields, validates and
// filters their submitted values, binds them onto entities and renders
// Bootstrap markup for them.
//
//	f := form.New("Maintenance des catégories").
//		Add(form.Field{Name: "category_id", Control: form.Hidden}).
//		Add(form.Field{Name: "category_name", Label: "Nom de la catégorie", Required: true}).
//		IndexRoute(route.URL("category")).
//		DeleteRoute(route.URL("category", "delete", id))
//
//	if form.IsSubmitted(r) {
//		if errs := f.Validate(r); len(errs) > 0 {
//			// flash errs and redirect
//		}
//		var c Category
//		err := f.Bind(r, &c)
//	}
//
// Rendering methods return template.HTML so they can be called from page
// templates: {{.Form.Render .Category}}. A nil entity renders the "new"
// variant of the form.
package form
