// Package simplefw is a small MVC web framework built on chi. Requests are
// routed by naming convention instead of route tables: the first path
// segment names the controller, the second the action, and the rest are
// arguments. Paths under /api reach JSON controllers that are picked by
// HTTP verb.
//
// # Quick Start
//
//	categories := repository.New[models.Category](conn, conn.Dialect())
//
//	app := simplefw.New(
//	    simplefw.WithAppName(cfg.Global.AppName),
//	    simplefw.WithViews(views),
//	    simplefw.WithStaticFiles("/public/", assets, "public"),
//	    simplefw.WithHandlers(simplefw.NewDispatcher(
//	        simplefw.WithRepository("CategoryRepository", func() any { return categories }),
//	        simplefw.WithController("CategoryController", simplefw.ControllerFor(controllers.NewCategory)),
//	        simplefw.WithController("CategoriesController", simplefw.ControllerFor(api.NewCategories)),
//	    )),
//	)
//
//	if err := app.Run(cfg.Runtime.Address); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controllers
//
// A web controller is any value with actions of type func(Context) error:
//
//	type CategoryController struct {
//	    repo repository.CRUD[models.Category]
//	}
//
//	// GET /category
//	func (h *CategoryController) IndexAction(c simplefw.Context) error {
//	    items, err := h.repo.All(c)
//	    if err != nil {
//	        return err
//	    }
//	    return c.View(http.StatusOK, "category/index", map[string]any{"Items": items})
//	}
//
//	// GET /category/edit/3
//	func (h *CategoryController) GetEdit(c simplefw.Context) error { ... }
//
//	// POST /category/edit/3
//	func (h *CategoryController) PostEdit(c simplefw.Context) error {
//	    ...
//	    c.AddFlash(simplefw.FlashSuccess, "Category saved")
//	    return c.RedirectTo("category")
//	}
//
// The verb-prefixed method wins over the plain "EditAction". Arguments are
// read with c.Arg(i) or the typed simplefw.Arg[T].
//
// An API controller implements [APIController]. GET /api/category/3 calls
// Get(c, "3") on the CategoriesController; POST calls Post, PUT and PATCH
// call Put, DELETE calls Delete. Errors on /api routes are answered with
// {"message": "..."}.
//
// # Packages
//
//   - pkg/route: the path convention parser and URL builder
//   - pkg/sqlbuilder: query and schema builders for MySQL, PostgreSQL and SQLite
//   - pkg/entity: hydration of structs from rows and attribute access
//   - pkg/repository: generic CRUD repositories with optional caching
//   - pkg/form: form definitions bound to entities
//   - pkg/view: html/template views with layouts
//   - pkg/db: connections and migrations
//   - pkg/config: JSON configuration with environment overrides
//   - middlewares: request ID, recover, timeout, CORS, metrics, access log
package simplefw
