// Package controllers holds the web and API controllers of the demo
// application. The dispatcher finds them by name: /category/edit/3 calls
// CategoryController.EditAction, /api/category/3 calls CategoriesController.
package controllers

import (
	"context"

	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/pkg/db"
	"github.com/dmitrymomot/simplefw/pkg/form"
	"github.com/dmitrymomot/simplefw/pkg/repository"
)

// Categories is the category store.
type Categories = repository.CRUD[models.Category]

// Contacts is the contact store, with the queries that join categories.
type Contacts interface {
	repository.CRUD[models.Contact]
	AllWithCategory(ctx context.Context) ([]*models.Contact, error)
	OneWithCategory(ctx context.Context, id int64) (*models.Contact, error)
	CountByCategory(ctx context.Context) (map[int64]int, error)
}

// Migrations lists and applies schema migrations.
type Migrations interface {
	Pending(ctx context.Context) ([]db.Migration, error)
	Migrate(ctx context.Context) ([]db.Result, error)
}

// Keys of the page data shared by the views.
const (
	keyTitle   = "Title"
	keyForm    = "Form"
	keyButtons = "Buttons"
	keyPending = "Pending"
)

// renderForm renders the fields and the button bar of f for ent, which is a
// nil pointer for a new entity.
func renderForm(f *form.Manager, ent any) (map[string]any, error) {
	fields, err := f.Render(ent)
	if err != nil {
		return nil, err
	}
	buttons, err := f.RenderButtons(ent)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		keyTitle:   f.Title(),
		keyForm:    fields,
		keyButtons: buttons,
	}, nil
}
