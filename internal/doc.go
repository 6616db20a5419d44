// Package internal provides the core types and implementation for the simplefw framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/simplefw" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, views, flashes and graceful shutdown
//   - Context: Request/response access plus controller helpers
//   - Router: Interface handlers use to declare routes
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns
//   - Dispatcher: Convention-based handler that resolves controllers by name
//
// # Conventional Routing
//
// The Dispatcher maps every request path to a controller without explicit
// route declarations. The path, or the "route" query parameter when present,
// is split into segments:
//
//	/                    HomeController.IndexAction
//	/category            CategoryController.IndexAction
//	/category/edit/3     CategoryController.GetEdit or EditAction, Arg(0) == "3"
//	/api/category/3      CategoriesController.Get(c, "3")
//
// Web actions are methods of type func(Context) error. A verb-specific method
// ("GetEdit", "PostEdit") wins over the generic action ("EditAction").
// API controllers implement APIController and receive the verb:
//
//	d := internal.NewDispatcher(
//	    internal.WithRepository("CategoryRepository", func() any { return categories }),
//	    internal.WithController("CategoryController", internal.ControllerFor(
//	        func(r repository.CRUD[models.Category]) any { return controllers.NewCategory(r) },
//	    )),
//	)
//
//	app := internal.New(internal.WithHandlers(d))
//
// Unknown controllers and actions end in a 404; an API verb without a
// matching method ends in a 405.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to repository
// calls and anything else that expects a standard library context.
//
// # Views and Flashes
//
// View renders a named page through the configured Views. Every page gets the
// app name, the menu, the parsed route and the flash messages:
//
//	func (h *CategoryController) PostEdit(c internal.Context) error {
//	    // save...
//	    c.AddFlash(cookie.FlashSuccess, "Category saved")
//	    return c.RedirectTo("category")
//	}
//
// Flash messages are stored in one encrypted cookie and consumed by the next
// page that renders them.
//
// # Error Handling
//
// Errors returned from handlers go to the ErrorHandler. The default one
// answers /api routes with {"message": "..."} and web routes with the
// "error/<code>" view, falling back to plain text. Details are only shown
// in development mode.
//
// # Server Runtime
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.ShutdownHook(db.Shutdown(conn)),
//	)
//
// Run blocks until SIGINT or SIGTERM and then drains in-flight requests.
package internal
