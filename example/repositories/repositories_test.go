package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/example/migrations"
	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/example/repositories"
	"github.com/dmitrymomot/simplefw/pkg/cache"
	"github.com/dmitrymomot/simplefw/pkg/db"
	"github.com/dmitrymomot/simplefw/pkg/repository"
)

func openMigrated(t *testing.T) *db.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.Config{Type: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	m, err := db.NewMigrator(conn, "migrations", migrations.All())
	require.NoError(t, err)
	results, err := m.Migrate(ctx)
	require.NoError(t, err)
	_, failed := db.Failed(results)
	require.False(t, failed)
	return conn
}

func addCategory(t *testing.T, r repositories.Categories, name string) *models.Category {
	t.Helper()

	c := &models.Category{CategoryName: name}
	n, err := r.Save(context.Background(), c)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NotZero(t, c.ID())
	return c
}

func TestCategories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	conn := openMigrated(t)
	categories := repositories.NewCategories(conn, conn.Dialect(), nil, 0)

	friends := addCategory(t, categories, "Amis")
	addCategory(t, categories, "Famille")

	all, err := categories.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	friends.CategoryName = "Amis proches"
	n, err := categories.Save(ctx, friends)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := categories.One(ctx, friends.ID())
	require.NoError(t, err)
	require.Equal(t, "Amis proches", got.CategoryName)

	n, err = categories.Delete(ctx, got)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = categories.One(ctx, friends.ID())
	require.True(t, repository.IsNotFound(err))
}

func TestCachedCategories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	conn := openMigrated(t)
	mem := cache.NewMemory[[]*models.Category]()
	t.Cleanup(func() { _ = mem.Close() })

	categories := repositories.NewCategories(conn, conn.Dialect(), mem, 0)
	addCategory(t, categories, "Amis")

	all, err := categories.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 1, mem.Len())

	// Writes clear the cache, so the next read sees the new row.
	addCategory(t, categories, "Famille")
	require.Equal(t, 0, mem.Len())

	all, err = categories.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestContactsWithCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	conn := openMigrated(t)
	categories := repositories.NewCategories(conn, conn.Dialect(), nil, 0)
	contacts := repositories.NewContacts(conn, conn.Dialect())

	friends := addCategory(t, categories, "Amis")
	family := addCategory(t, categories, "Famille")

	for _, c := range []*models.Contact{
		{ContactName: "Zoé", ContactEmail: "zoe@example.com", CategoryID: friends.ID()},
		{ContactName: "Albert", ContactEmail: "albert@example.com", CategoryID: family.ID()},
		{ContactName: "Marie", CategoryID: friends.ID()},
	} {
		n, err := contacts.Save(ctx, c)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	}

	all, err := contacts.AllWithCategory(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Albert", all[0].ContactName)
	require.Equal(t, "Famille", all[0].CategoryName())
	require.Equal(t, "Zoé", all[2].ContactName)
	require.Equal(t, "Amis", all[2].CategoryName())

	one, err := contacts.OneWithCategory(ctx, all[1].ID())
	require.NoError(t, err)
	require.Equal(t, "Marie", one.ContactName)
	require.Equal(t, "Amis", one.CategoryName())

	_, err = contacts.OneWithCategory(ctx, 999)
	require.True(t, repository.IsNotFound(err))

	counts, err := contacts.CountByCategory(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int64]int{friends.ID(): 2, family.ID(): 1}, counts)
}

func TestContactRequiresCategory(t *testing.T) {
	t.Parallel()

	conn := openMigrated(t)
	contacts := repositories.NewContacts(conn, conn.Dialect())

	_, err := contacts.Save(context.Background(), &models.Contact{ContactName: "Orphelin", CategoryID: 42})
	require.Error(t, err)
}
