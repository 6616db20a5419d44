package main

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/simplefw"
	"github.com/dmitrymomot/simplefw/example/controllers"
	"github.com/dmitrymomot/simplefw/example/migrations"
	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/example/repositories"
	"github.com/dmitrymomot/simplefw/example/views"
	"github.com/dmitrymomot/simplefw/middlewares"
	"github.com/dmitrymomot/simplefw/pkg/cache"
	"github.com/dmitrymomot/simplefw/pkg/config"
	"github.com/dmitrymomot/simplefw/pkg/db"
)

//go:embed public
var public embed.FS

// deps are the resources main opens before building the app.
type deps struct {
	cfg      *config.Config
	log      *slog.Logger
	conn     *db.DB
	cache    cache.Cache[[]*models.Category]
	registry *prometheus.Registry
	checks   []simplefw.HealthOption
}

// newApp wires the repositories, controllers and middlewares of the demo.
func newApp(d deps) (*simplefw.App, error) {
	migrator, err := db.NewMigrator(d.conn, d.cfg.System.MigrationsTable, migrations.All(),
		db.WithMigratorLogger(d.log),
	)
	if err != nil {
		return nil, err
	}

	engine, err := views.New(d.cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}

	if d.registry == nil {
		d.registry = prometheus.NewRegistry()
		d.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(d.conn.DB, d.cfg.Database.Name),
		)
	}

	categories := repositories.NewCategories(d.conn, d.conn.Dialect(), d.cache, d.cfg.Cache.TTL)
	contacts := repositories.NewContacts(d.conn, d.conn.Dialect())

	dispatcher := simplefw.NewDispatcher(
		simplefw.WithRepository("CategoryRepository", func() any { return categories }),
		simplefw.WithRepository("ContactRepository", func() any { return contacts }),

		simplefw.WithController("HomeController", func(any) any { return controllers.NewHome(migrator) }),
		simplefw.WithController("MigrationController", func(any) any { return controllers.NewMigration(migrator) }),
		simplefw.WithController("CategoryController", simplefw.ControllerFor(func(r controllers.Categories) any {
			return controllers.NewCategory(r, contacts)
		})),
		simplefw.WithController("ContactController", simplefw.ControllerFor(func(r controllers.Contacts) any {
			return controllers.NewContact(r, categories)
		})),
		simplefw.WithController("CategoriesController", simplefw.ControllerFor(func(r controllers.Categories) any {
			return controllers.NewCategoriesAPI(r)
		})),
		simplefw.WithController("ContactsController", simplefw.ControllerFor(func(r controllers.Contacts) any {
			return controllers.NewContactsAPI(r)
		})),
	)

	cookieOpts := []simplefw.CookieOption{
		simplefw.WithCookieSameSite(http.SameSiteLaxMode),
		simplefw.WithCookieSecure(!d.cfg.IsDevelopment()),
	}
	if d.cfg.Security.CookieSecret != "" {
		cookieOpts = append(cookieOpts, simplefw.WithCookieSecret(d.cfg.Security.CookieSecret))
	}

	checks := append([]simplefw.HealthOption{
		simplefw.WithReadinessCheck("database", db.Healthcheck(d.conn.DB)),
	}, d.checks...)

	return simplefw.New(
		simplefw.WithCustomLogger(d.log),
		simplefw.WithAppName(d.cfg.Global.AppName),
		simplefw.WithMenu(d.cfg.Menu),
		simplefw.WithDevelopmentMode(d.cfg.IsDevelopment()),
		simplefw.WithViews(engine),
		simplefw.WithCookieOptions(cookieOpts...),
		simplefw.WithStaticFiles("/scripts/", public, "public/scripts"),
		simplefw.WithHealthChecks(checks...),
		simplefw.WithMetrics("/metrics", d.registry),
		simplefw.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(middlewares.WithAccessLogSkipPaths("/health/live", "/health/ready", "/metrics")),
			middlewares.Metrics(d.registry),
			middlewares.Recover(),
			middlewares.CORS(),
			middlewares.Timeout(d.cfg.Runtime.RequestTimeout),
		),
		simplefw.WithHandlers(dispatcher),
	), nil
}
