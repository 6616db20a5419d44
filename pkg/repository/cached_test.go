package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/cache"
	"github.com/dmitrymomot/simplefw/pkg/repository"
	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

func TestCached(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mem := cache.NewMemory[[]*Category]()
	t.Cleanup(func() { mem.Close() })

	repo := repository.NewCached[Category](repository.New[Category](db, sqlbuilder.MySQL), mem, 0)
	ctx := context.Background()

	mock.ExpectQuery("SELECT * FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).AddRow(1, "Amis"))

	first, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Served from cache, no second query expected.
	second, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	mock.ExpectExec("INSERT INTO categories (category_name) VALUES (?)").
		WithArgs("Famille").
		WillReturnResult(sqlmock.NewResult(2, 1))
	_, err = repo.Save(ctx, &Category{CategoryName: "Famille"})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT * FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).
			AddRow(1, "Amis").
			AddRow(2, "Famille"))

	third, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, third, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedOneNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mem := cache.NewMemory[[]*Category]()
	t.Cleanup(func() { mem.Close() })

	repo := repository.NewCached[Category](repository.New[Category](db, sqlbuilder.MySQL), mem, 0)

	mock.ExpectQuery("SELECT * FROM categories WHERE category_id = ?").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}))

	_, err := repo.One(context.Background(), 5)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

// racingStore writes through the cached repository while its first load
// is still running.
type racingStore struct {
	repository.CRUD[Category]

	cached *repository.Cached[Category]
	rows   [][]*Category
	loads  int
}

func (s *racingStore) All(ctx context.Context) ([]*Category, error) {
	s.loads++
	rows := s.rows[0]
	if s.loads == 1 {
		if _, err := s.cached.Save(ctx, &Category{CategoryName: "Famille"}); err != nil {
			return nil, err
		}
	}
	if s.loads > 1 {
		rows = s.rows[1]
	}
	return rows, nil
}

func (s *racingStore) Save(context.Context, *Category) (int64, error) { return 1, nil }

func TestCachedWriteDuringLoad(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory[[]*Category]()
	t.Cleanup(func() { mem.Close() })

	store := &racingStore{rows: [][]*Category{
		{{CategoryName: "Amis"}},
		{{CategoryName: "Amis"}, {CategoryName: "Famille"}},
	}}
	repo := repository.NewCached[Category](store, mem, 0)
	store.cached = repo
	ctx := context.Background()

	stale, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.Equal(t, 0, mem.Len())

	fresh, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	require.Equal(t, 1, mem.Len())
	require.Equal(t, 2, store.loads)
}
