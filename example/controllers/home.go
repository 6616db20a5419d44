package controllers

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/simplefw"
	"github.com/dmitrymomot/simplefw/pkg/db"
)

// HomeController serves the landing page.
type HomeController struct {
	migrations Migrations
}

// NewHome returns the home controller.
func NewHome(m Migrations) *HomeController {
	return &HomeController{migrations: m}
}

// IndexAction lists the pending migrations, if any.
//
//	GET /
func (h *HomeController) IndexAction(c simplefw.Context) error {
	pending, err := h.migrations.Pending(c)
	if err != nil {
		c.LogWarn("failed to list pending migrations", slog.Any("error", err))
		c.AddFlash(simplefw.FlashDanger, err.Error())
	}

	return c.View(http.StatusOK, "home/index", map[string]any{
		keyTitle:     "Accueil",
		"Migrations": pending,
		keyPending:   len(pending) > 0,
	})
}

// MigrationController applies the pending migrations.
type MigrationController struct {
	migrations Migrations
}

// NewMigration returns the migration controller.
func NewMigration(m Migrations) *MigrationController {
	return &MigrationController{migrations: m}
}

// IndexAction runs the pending migrations and shows one line per attempt.
// With nothing pending it goes back home.
//
//	GET /migration
func (h *MigrationController) IndexAction(c simplefw.Context) error {
	pending, err := h.migrations.Pending(c)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return c.RedirectTo("home")
	}

	results, err := h.migrations.Migrate(c)
	if err != nil {
		return err
	}
	if failed, ok := db.Failed(results); ok {
		c.LogError("migration failed",
			slog.Int64("version", failed.Migration.Version),
			slog.Any("error", failed.Err),
		)
	}

	return c.View(http.StatusOK, "migration/index", map[string]any{
		keyTitle:  "Mises à jour de la base de données",
		"Results": results,
	})
}
