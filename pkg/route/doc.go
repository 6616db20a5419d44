// Package route parses request paths into conventional controller, action and
// entity names and builds URLs back from path segments.
//
// A web path has the shape /entity/action/param..., an API path the shape
// /api/entity/param...:
//
//	r := route.Parse("/category/edit/12", nil)
//	r.Controller // "CategoryController"
//	r.Action     // "editAction"
//	r.Params     // ["12"]
//
//	r = route.Parse("/api/category/12", nil)
//	r.APIController // "CategoriesController"
//
// The path may also be given through the "route" query parameter, which lets
// the application run behind servers that cannot rewrite URLs.
package route
