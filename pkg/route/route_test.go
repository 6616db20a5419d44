package route_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/route"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("root uses defaults", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/", nil)
		require.Equal(t, "/", r.Path)
		require.Equal(t, route.DefaultController, r.Controller)
		require.Equal(t, route.DefaultAction, r.Action)
		require.Equal(t, route.DefaultRepository, r.Repository)
		require.Equal(t, route.DefaultEntity, r.Entity)
		require.Empty(t, r.APIController)
		require.False(t, r.IsAPI)
		require.Empty(t, r.Params)
	})

	t.Run("entity only", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/category", nil)
		require.Equal(t, "Category", r.Entity)
		require.Equal(t, "CategoryController", r.Controller)
		require.Equal(t, "CategoriesController", r.APIController)
		require.Equal(t, "CategoryRepository", r.Repository)
		require.Equal(t, "indexAction", r.Action)
	})

	t.Run("entity action and params", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/contact/edit/12/", nil)
		require.Equal(t, "ContactController", r.Controller)
		require.Equal(t, "editAction", r.Action)
		require.Equal(t, []string{"12"}, r.Params)
		require.Equal(t, "12", r.Param(0))
		require.Empty(t, r.Param(1))
	})

	t.Run("action is camelized", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/contact/show_all", nil)
		require.Equal(t, "showAllAction", r.Action)
	})

	t.Run("api route", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/API/category/7", nil)
		require.True(t, r.IsAPI)
		require.Equal(t, "CategoriesController", r.APIController)
		require.Equal(t, "indexAction", r.Action)
		require.Equal(t, []string{"7"}, r.Params)
	})

	t.Run("params are url decoded", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/contact/search/jean%20dupont", nil)
		require.Equal(t, []string{"jean dupont"}, r.Params)
	})

	t.Run("escaped slash and percent are decoded once", func(t *testing.T) {
		t.Parallel()

		r := route.Parse("/contact/search/a%2Fb/100%2541", nil)
		require.Equal(t, []string{"a/b", "100%41"}, r.Params)
	})

	t.Run("route query value is not decoded again", func(t *testing.T) {
		t.Parallel()

		q := url.Values{"route": {"/contact/search/100%41"}}
		r := route.Parse("/", q)
		require.Equal(t, []string{"100%41"}, r.Params)
	})

	t.Run("route query parameter wins", func(t *testing.T) {
		t.Parallel()

		q := url.Values{"route": {"/category/delete/4"}, "page": {"2"}}
		r := route.Parse("/index.php", q)
		require.Equal(t, "CategoryController", r.Controller)
		require.Equal(t, "deleteAction", r.Action)
		require.Equal(t, []string{"4"}, r.Params)
		require.Equal(t, "2", r.Query.Get("page"))
		require.False(t, r.Query.Has("route"))
	})
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/category/edit/3?x=1", nil)
	r := route.FromRequest(req)
	require.Equal(t, "editAction", r.Action)
	require.Equal(t, "1", r.Query.Get("x"))

	t.Run("url round trip keeps params", func(t *testing.T) {
		t.Parallel()

		target := route.URL("contact", "search", "a/b", "100%41")
		r := route.FromRequest(httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, "searchAction", r.Action)
		require.Equal(t, []string{"a/b", "100%41"}, r.Params)
	})
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	r := route.Parse("/category/edit/3", nil)
	require.Equal(t, []string{"getEdit", "editAction"}, r.Candidates(http.MethodGet))
	require.Equal(t, []string{"postEdit", "editAction"}, r.Candidates(http.MethodPost))
	require.Equal(t, []string{"editAction"}, r.Candidates(http.MethodDelete))

	home := route.Parse("/", nil)
	require.Equal(t, []string{"getIndex", "indexAction"}, home.Candidates(http.MethodGet))
}

func TestURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/", route.URL())
	require.Equal(t, "/category", route.URL("category"))
	require.Equal(t, "/category/edit/3", route.URL(" category ", "edit", "", "3"))
	require.Equal(t, "/contact/search/a%20b", route.URL("contact", "search", "a b"))

	require.Equal(t, "/category", route.URLWithQuery([]string{"category"}, nil))
	require.Equal(t, "/category?page=2", route.URLWithQuery([]string{"category"}, url.Values{"page": {"2"}}))
}
