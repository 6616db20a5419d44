// Command example runs the categories and contacts demo on simplefw.
//
// Configuration comes from appconf.json (or the file named by APP_CONFIG)
// with APP_* environment overrides, for example APP_DATABASE_TYPE=sqlite.
package main

import (
	"cmp"
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/simplefw"
	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/middlewares"
	"github.com/dmitrymomot/simplefw/pkg/cache"
	"github.com/dmitrymomot/simplefw/pkg/config"
	"github.com/dmitrymomot/simplefw/pkg/db"
	"github.com/dmitrymomot/simplefw/pkg/logger"
	"github.com/dmitrymomot/simplefw/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(cmp.Or(os.Getenv("APP_CONFIG"), "appconf.json"))
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(
		logger.SentryConfig{DSN: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment},
		logger.Options{Level: logger.ParseLevel(cfg.Logging.Level), Text: cfg.IsDevelopment()},
		middlewares.RequestIDExtractor(),
	).With("app", cfg.Global.AppName)

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}

	runOpts := []simplefw.RunOption{
		simplefw.Logger(log),
		simplefw.ShutdownTimeout(cfg.Runtime.ShutdownTimeout),
		simplefw.ShutdownHook(db.Shutdown(conn)),
	}

	d := deps{cfg: cfg, log: log, conn: conn}

	switch cfg.Cache.Driver {
	case config.CacheRedis:
		client, err := redis.Open(ctx, cfg.Cache.RedisURL)
		if err != nil {
			_ = conn.Close()
			return err
		}
		runOpts = append(runOpts, simplefw.ShutdownHook(redis.Shutdown(client)))
		d.checks = append(d.checks, simplefw.WithReadinessCheck("redis", redis.Healthcheck(client)))

		d.cache, err = cache.New[[]*models.Category](cache.DriverRedis, client,
			cache.WithPrefix("simplefw:categories:"),
			cache.WithTTL(cfg.Cache.TTL),
		)
		if err != nil {
			_ = conn.Close()
			return err
		}
	case config.CacheMemory:
		d.cache = cache.NewMemory[[]*models.Category](cache.WithTTL(cfg.Cache.TTL))
	}
	if c := d.cache; c != nil {
		runOpts = append(runOpts, simplefw.ShutdownHook(func(context.Context) error { return c.Close() }))
	}

	app, err := newApp(d)
	if err != nil {
		_ = conn.Close()
		return err
	}

	log.Info("starting",
		slog.String("address", cfg.Runtime.Address),
		slog.String("mode", cfg.Runtime.Mode),
		slog.String("database", cfg.Database.Type),
		slog.String("cache", cfg.Cache.Driver),
	)
	return app.Run(cfg.Runtime.Address, runOpts...)
}
