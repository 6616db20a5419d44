// Package repository provides a generic table gateway for entities.
//
// The table and primary key are derived from the entity type name: an
// entity named Category lives in the "categories" table with primary key
// "category_id". Both can be overridden with options.
//
//	categories := repository.New[models.Category](db, sqlbuilder.MySQL)
//	all, err := categories.All(ctx)
//	one, err := categories.One(ctx, 3)
//	n, err := categories.Save(ctx, &models.Category{CategoryName: "Amis"})
//
// Cached wraps any CRUD implementation with a cache from pkg/cache.
package repository
