package entity_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/entity"
)

type category struct {
	entity.State
	CategoryID   *int   `db:"category_id" json:"categoryId"`
	CategoryName string `db:"category_name" json:"categoryName"`
}

type contact struct {
	ContactID    *int
	ContactName  string
	ContactEmail sql.NullString
	CategoryID   int
	CreatedAt    time.Time `db:"created_at,readonly"`
	Category     *category
	Secret       string `db:"-"`
}

func TestHydrate(t *testing.T) {
	t.Parallel()

	t.Run("converts driver values", func(t *testing.T) {
		t.Parallel()

		var c contact
		err := entity.Hydrate(&c, map[string]any{
			"contact_id":    int64(4),
			"contact_name":  []byte("Jean"),
			"contact_email": "jean@example.com",
			"category_id":   "2",
			"created_at":    time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
			"unknown":       "ignored",
		}, false)
		require.NoError(t, err)
		require.NotNil(t, c.ContactID)
		require.Equal(t, 4, *c.ContactID)
		require.Equal(t, "Jean", c.ContactName)
		require.Equal(t, sql.NullString{String: "jean@example.com", Valid: true}, c.ContactEmail)
		require.Equal(t, 2, c.CategoryID)
		require.Equal(t, 2020, c.CreatedAt.Year())
	})

	t.Run("null leaves pointers nil", func(t *testing.T) {
		t.Parallel()

		var c contact
		require.NoError(t, entity.Hydrate(&c, map[string]any{"contact_id": nil, "contact_email": nil}, true))
		require.Nil(t, c.ContactID)
		require.False(t, c.ContactEmail.Valid)
	})

	t.Run("sets new state", func(t *testing.T) {
		t.Parallel()

		var c category
		require.NoError(t, entity.Hydrate(&c, map[string]any{"category_name": "Amis"}, true))
		require.True(t, c.IsNew())
		require.NoError(t, entity.Hydrate(&c, map[string]any{}, false))
		require.False(t, c.IsNew())
	})

	t.Run("rejects non pointers", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, entity.Hydrate(category{}, nil, false), entity.ErrNotStructPointer)
	})

	t.Run("conversion error", func(t *testing.T) {
		t.Parallel()

		var c contact
		err := entity.Hydrate(&c, map[string]any{"category_id": "abc"}, false)
		require.ErrorIs(t, err, entity.ErrConvert)
	})
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"category_id", "category_name"}).
			AddRow(int64(1), "Amis").
			AddRow(int64(2), "Famille"),
	)

	rows, err := db.Query("SELECT * FROM categories")
	require.NoError(t, err)

	items, err := entity.FetchAll[category](rows)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, *items[1].CategoryID)
	require.Equal(t, "Famille", items[1].CategoryName)
}

func TestFetchOneEmpty(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"category_id"}))

	rows, err := db.Query("SELECT * FROM categories")
	require.NoError(t, err)

	_, err = entity.FetchOne[category](rows)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestValues(t *testing.T) {
	t.Parallel()

	id := 3
	c := contact{
		ContactID:   &id,
		ContactName: "Jean",
		CategoryID:  2,
		Category:    &category{CategoryName: "Amis"},
		Secret:      "x",
	}

	values, err := entity.Values(&c)
	require.NoError(t, err)
	require.Equal(t, &id, values["contact_id"])
	require.Equal(t, "Jean", values["contact_name"])
	require.Equal(t, 2, values["category_id"])
	require.Contains(t, values, "contact_email")
	require.NotContains(t, values, "category")
	require.NotContains(t, values, "secret")
	require.NotContains(t, values, "created_at")

	cols, err := entity.Columns(c)
	require.NoError(t, err)
	require.Equal(t, []string{"contact_id", "contact_name", "contact_email", "category_id", "created_at"}, cols)
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	var c category
	require.NoError(t, entity.Set(&c, "categoryId", "5"))
	require.NoError(t, entity.Set(&c, "category_name", "Travail"))

	v, err := entity.Get(c, "CategoryID")
	require.NoError(t, err)
	require.Equal(t, 5, v)

	v, err = entity.Get(&c, "categoryName")
	require.NoError(t, err)
	require.Equal(t, "Travail", v)

	require.NoError(t, entity.Set(&c, "category_id", ""))
	v, err = entity.Get(c, "category_id")
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = entity.Get(c, "missing")
	require.ErrorIs(t, err, entity.ErrUnknownAttribute)
	require.True(t, entity.Has(c, "category_name"))
	require.False(t, entity.Has(c, "missing"))
}

func TestMap(t *testing.T) {
	t.Parallel()

	type dto struct {
		ContactName string `json:"name"`
		CategoryID  int64  `json:"categoryId"`
	}

	src := contact{ContactName: "Jean", CategoryID: 2}
	var dst dto
	require.NoError(t, entity.Map(src, &dst))
	require.Equal(t, dto{ContactName: "Jean", CategoryID: 2}, dst)
}

func TestSelectList(t *testing.T) {
	t.Parallel()

	one, two := 1, 2
	items := []*category{
		{CategoryID: &one, CategoryName: "Amis"},
		{CategoryID: &two, CategoryName: "Famille"},
	}

	opts := entity.SelectList(items, "category_id", "category_name")
	require.Equal(t, []entity.Option{
		{Value: "1", Label: "Amis"},
		{Value: "2", Label: "Famille"},
	}, opts)

	require.Nil(t, entity.SelectList("not a slice", "a", "b"))
}
