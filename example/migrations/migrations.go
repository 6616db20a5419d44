// Package migrations holds the schema history of the demo application.
package migrations

import (
	"context"
	"database/sql"

	"github.com/dmitrymomot/simplefw/pkg/db"
	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// All returns the migrations in version order.
func All() []db.Migration {
	return []db.Migration{
		{
			Version:     20200701001,
			Name:        "create_categories_table",
			Description: "Création de la table Catégories",
			Up:          createCategories,
		},
		{
			Version:     20200701002,
			Name:        "create_contacts_table",
			Description: "Création de la table Contacts",
			Up:          createContacts,
		},
	}
}

func createCategories(ctx context.Context, tx *sql.Tx, d sqlbuilder.Dialect) error {
	return sqlbuilder.NewSchema(d).
		CreateTable("categories", true).
		Identity("category_id", "int").
		String("category_name", 50, false).
		Commit(ctx, tx)
}

func createContacts(ctx context.Context, tx *sql.Tx, d sqlbuilder.Dialect) error {
	return sqlbuilder.NewSchema(d).
		CreateTable("contacts", true).
		Identity("contact_id", "int").
		String("contact_name", 50, false).
		String("contact_email", 100, true).
		Int("category_id", 11, false).
		ForeignKey(sqlbuilder.ForeignKey{
			Name:      "fk_contact_category",
			Column:    "category_id",
			RefTable:  "categories",
			RefColumn: "category_id",
			OnUpdate:  sqlbuilder.Cascade,
		}).
		Timestamps().
		Commit(ctx, tx)
}
