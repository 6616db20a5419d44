package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/repository"
	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

type Category struct {
	CategoryID   *int   `db:"category_id"`
	CategoryName string `db:"category_name"`
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func intPtr(v int) *int { return &v }

func TestRepositoryConventions(t *testing.T) {
	t.Parallel()

	db, _ := newMock(t)

	r := repository.New[Category](db, sqlbuilder.MySQL)
	require.Equal(t, "categories", r.Table())
	require.Equal(t, []string{"category_id"}, r.PrimaryKey())
	require.Equal(t, "Category", r.Entity())

	r = repository.New[Category](db, sqlbuilder.MySQL, repository.WithTable("cats"), repository.WithPrimaryKey("id"))
	require.Equal(t, "cats", r.Table())
	require.Equal(t, []string{"id"}, r.PrimaryKey())
}

func TestRepositoryAll(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT * FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).
			AddRow(1, "Amis").
			AddRow(2, "Famille"))

	items, err := repository.New[Category](db, sqlbuilder.MySQL).All(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Amis", items[0].CategoryName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryOne(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery("SELECT * FROM categories WHERE category_id = $1").
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).AddRow(2, "Famille"))

		item, err := repository.New[Category](db, sqlbuilder.Postgres).One(context.Background(), 2)
		require.NoError(t, err)
		require.Equal(t, 2, *item.CategoryID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery("SELECT * FROM categories WHERE category_id = ?").
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}))

		_, err := repository.New[Category](db, sqlbuilder.MySQL).One(context.Background(), 9)
		require.ErrorIs(t, err, repository.ErrNotFound)
		require.True(t, repository.IsNotFound(err))
	})

	t.Run("key count mismatch", func(t *testing.T) {
		t.Parallel()

		db, _ := newMock(t)
		_, err := repository.New[Category](db, sqlbuilder.MySQL).One(context.Background(), 1, 2)
		require.ErrorIs(t, err, repository.ErrKeyMismatch)
	})
}

func TestRepositoryFindBy(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT * FROM categories WHERE category_name = ?").
		WithArgs("Amis").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).AddRow(1, "Amis"))

	items, err := repository.New[Category](db, sqlbuilder.MySQL).
		FindBy(context.Background(), map[string]any{"category_name": "Amis"})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestRepositorySave(t *testing.T) {
	t.Parallel()

	t.Run("inserts new entity and sets id", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectExec("INSERT INTO categories (category_name) VALUES (?)").
			WithArgs("Amis").
			WillReturnResult(sqlmock.NewResult(7, 1))

		c := &Category{CategoryName: "Amis"}
		n, err := repository.New[Category](db, sqlbuilder.MySQL).Save(context.Background(), c)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.NotNil(t, c.CategoryID)
		require.Equal(t, 7, *c.CategoryID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("postgres insert uses returning", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO categories (category_name) VALUES ($1) RETURNING category_id").
			WithArgs("Amis").
			WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(int64(12)))

		c := &Category{CategoryName: "Amis"}
		n, err := repository.New[Category](db, sqlbuilder.Postgres).Insert(context.Background(), c)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.Equal(t, 12, *c.CategoryID)
	})

	t.Run("zero id inserts", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectExec("INSERT INTO categories (category_name) VALUES (?)").
			WithArgs("Amis").
			WillReturnResult(sqlmock.NewResult(8, 1))

		c := &Category{CategoryID: intPtr(0), CategoryName: "Amis"}
		n, err := repository.New[Category](db, sqlbuilder.MySQL).Save(context.Background(), c)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.Equal(t, 8, *c.CategoryID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates existing entity", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectExec("UPDATE categories SET category_id = ?, category_name = ? WHERE category_id = ?").
			WithArgs(3, "Famille", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c := &Category{CategoryID: intPtr(3), CategoryName: "Famille"}
		n, err := repository.New[Category](db, sqlbuilder.MySQL).Save(context.Background(), c)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil entity", func(t *testing.T) {
		t.Parallel()

		db, _ := newMock(t)
		_, err := repository.New[Category](db, sqlbuilder.MySQL).Save(context.Background(), nil)
		require.ErrorIs(t, err, repository.ErrNilEntity)
	})
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes by key", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectExec("DELETE FROM categories WHERE category_id = ?").
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repository.New[Category](db, sqlbuilder.MySQL).
			Delete(context.Background(), &Category{CategoryID: intPtr(3)})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("requires key", func(t *testing.T) {
		t.Parallel()

		db, _ := newMock(t)
		_, err := repository.New[Category](db, sqlbuilder.MySQL).Delete(context.Background(), &Category{})
		require.ErrorIs(t, err, repository.ErrNoPrimaryKey)

		_, err = repository.New[Category](db, sqlbuilder.MySQL).
			Delete(context.Background(), &Category{CategoryID: intPtr(0)})
		require.ErrorIs(t, err, repository.ErrNoPrimaryKey)
	})
}
